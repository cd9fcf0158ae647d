// Package models defines the entities returned by the Shikimori API
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Image holds the image renditions served for titles and characters.
type Image struct {
	Original string `json:"original"`
	Preview  string `json:"preview"`
	X96      string `json:"x96"`
	X48      string `json:"x48"`
}

// Score handles scores the API sends either as numbers or as strings ("8.78").
type Score float64

// UnmarshalJSON accepts both number and string forms.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*s = 0
			return nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*s = Score(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Score(f)
	return nil
}

// Float64 returns the score as a float64
func (s Score) Float64() float64 {
	return float64(s)
}

// Genre is a catalogue genre, theme or demographic.
type Genre struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Russian   string `json:"russian"`
	Kind      string `json:"kind"`
	EntryType string `json:"entry_type"`
}

// Studio is an animation studio.
type Studio struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	FilteredName string  `json:"filtered_name"`
	Real         bool    `json:"real"`
	Image        *string `json:"image"`
}

// Publisher is a manga publisher.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is a promotional or opening/ending video attached to an anime.
type Video struct {
	ID        int    `json:"id"`
	URL       string `json:"url"`
	ImageURL  string `json:"image_url"`
	PlayerURL string `json:"player_url"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Hosting   string `json:"hosting"`
}

// Screenshot is an anime frame.
type Screenshot struct {
	Original string `json:"original"`
	Preview  string `json:"preview"`
}

// StatCount is one bucket of the score or status histograms.
type StatCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ExternalLink points at another site's page for a title.
type ExternalLink struct {
	ID         *int    `json:"id"`
	Kind       string  `json:"kind"`
	URL        string  `json:"url"`
	Source     string  `json:"source"`
	EntryID    int     `json:"entry_id"`
	EntryType  string  `json:"entry_type"`
	CreatedAt  *string `json:"created_at"`
	UpdatedAt  *string `json:"updated_at"`
	ImportedAt *string `json:"imported_at"`
}

// Relation links a title to a related anime or manga.
type Relation struct {
	Relation        string     `json:"relation"`
	RelationRussian string     `json:"relation_russian"`
	Anime           *AnimeInfo `json:"anime"`
	Manga           *MangaInfo `json:"manga"`
}

// FranchiseTree is the graph of titles in one franchise.
type FranchiseTree struct {
	Links     []FranchiseLink `json:"links"`
	Nodes     []FranchiseNode `json:"nodes"`
	CurrentID int             `json:"current_id"`
}

// FranchiseLink is an edge of a FranchiseTree.
type FranchiseLink struct {
	ID       int    `json:"id"`
	SourceID int    `json:"source_id"`
	TargetID int    `json:"target_id"`
	Source   int    `json:"source"`
	Target   int    `json:"target"`
	Weight   int    `json:"weight"`
	Relation string `json:"relation"`
}

// FranchiseNode is a vertex of a FranchiseTree.
type FranchiseNode struct {
	ID       int    `json:"id"`
	Date     int64  `json:"date"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	URL      string `json:"url"`
	Year     *int   `json:"year"`
	Kind     string `json:"kind"`
	Weight   int    `json:"weight"`
}

// Role ties a character or person to a title.
type Role struct {
	Roles        []string       `json:"roles"`
	RolesRussian []string       `json:"roles_russian"`
	Character    *CharacterInfo `json:"character"`
	Person       *PersonInfo    `json:"person"`
}

// CharacterInfo is the short form of a character.
type CharacterInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Russian string `json:"russian"`
	Image   Image  `json:"image"`
	URL     string `json:"url"`
}

// PersonInfo is the short form of a person.
type PersonInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Russian string `json:"russian"`
	Image   Image  `json:"image"`
	URL     string `json:"url"`
}
