package models

import (
	"encoding/json"
	"time"

	"github.com/bobmcallan/shiki/pkg/validate"
)

// HistoryTarget is the anime or manga a history record refers to.
type HistoryTarget struct {
	Anime *AnimeInfo
	Manga *MangaInfo
}

// History is one entry of a user's activity history.
type History struct {
	ID          int            `json:"id"`
	CreatedAt   *time.Time     `json:"created_at"`
	Description string         `json:"description"`
	Target      *HistoryTarget `json:"-"`
}

var historyCandidates = []validate.Candidate{
	{Name: "Anime", Required: []string{"episodes"}, New: func() any { return new(AnimeInfo) }},
	{Name: "Manga", Required: []string{"volumes"}, New: func() any { return new(MangaInfo) }},
}

// UnmarshalJSON resolves the target by shape, since history records carry
// no discriminant.
func (h *History) UnmarshalJSON(data []byte) error {
	type historyAlias History
	aux := struct {
		*historyAlias
		Target json.RawMessage `json:"target"`
	}{historyAlias: (*historyAlias)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	_, v, err := validate.Union(aux.Target, historyCandidates...)
	if err != nil {
		return err
	}
	switch e := v.(type) {
	case *AnimeInfo:
		h.Target = &HistoryTarget{Anime: e}
	case *MangaInfo:
		h.Target = &HistoryTarget{Manga: e}
	}
	return nil
}
