package models

import (
	"encoding/json"
	"time"

	"github.com/bobmcallan/shiki/pkg/validate"
)

// Forum is a forum section.
type Forum struct {
	ID        int    `json:"id"`
	Position  int    `json:"position"`
	Name      string `json:"name"`
	Permalink string `json:"permalink"`
	URL       string `json:"url"`
}

// Linked is the entity a topic is attached to. Exactly one of the pointer
// fields is set, as named by Type; unknown entity kinds leave all of them
// nil and keep the payload in Raw.
type Linked struct {
	Type   string
	Anime  *AnimeInfo
	Manga  *MangaInfo
	Ranobe *RanobeInfo
	Club   *Club
	Raw    json.RawMessage
}

// Topic is a forum topic.
type Topic struct {
	ID                int        `json:"id"`
	TopicTitle        *string    `json:"topic_title"`
	Body              *string    `json:"body"`
	HTMLBody          *string    `json:"html_body"`
	HTMLFooter        *string    `json:"html_footer"`
	CreatedAt         *time.Time `json:"created_at"`
	CommentsCount     *int       `json:"comments_count"`
	Forum             *Forum     `json:"forum"`
	User              *UserInfo  `json:"user"`
	Type              *string    `json:"type"`
	LinkedID          *int       `json:"linked_id"`
	LinkedType        *string    `json:"linked_type"`
	Linked            *Linked    `json:"-"`
	Viewed            *bool      `json:"viewed"`
	LastCommentViewed *bool      `json:"last_comment_viewed"`
	Event             *string    `json:"event"`
	Episode           *int       `json:"episode"`
}

// UnmarshalJSON resolves the linked entity, preferring linked_type and
// falling back to the shape of the payload.
func (t *Topic) UnmarshalJSON(data []byte) error {
	type topicAlias Topic
	aux := struct {
		*topicAlias
		Linked json.RawMessage `json:"linked"`
	}{topicAlias: (*topicAlias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	tag := ""
	if t.LinkedType != nil {
		tag = *t.LinkedType
	}
	linked, err := ResolveLinked(tag, aux.Linked)
	if err != nil {
		return err
	}
	t.Linked = linked
	return nil
}

// LinkedCandidates lists the shapes a linked entity may take, in match
// order. Manga and ranobe are structurally identical; the ranobe candidate
// is told apart by its kind and therefore comes first.
func LinkedCandidates() []validate.Candidate {
	return []validate.Candidate{
		{Name: "Club", Required: []string{"join_policy"}, New: func() any { return new(Club) }},
		{Name: "Anime", Required: []string{"episodes"}, New: func() any { return new(AnimeInfo) }},
		{Name: "Ranobe", Required: []string{"volumes"}, Match: isRanobe, New: func() any { return new(RanobeInfo) }},
		{Name: "Manga", Required: []string{"volumes"}, New: func() any { return new(MangaInfo) }},
	}
}

func isRanobe(f validate.Fields) bool {
	switch f.Text("kind") {
	case "light_novel", "novel":
		return true
	}
	return false
}

// ResolveLinked decodes a linked payload into a Linked value. Payloads of
// entity kinds without a model are kept raw rather than rejected.
func ResolveLinked(tag string, raw json.RawMessage) (*Linked, error) {
	name, v, err := validate.Tagged(tag, raw, LinkedCandidates()...)
	if err != nil {
		if tag != "" {
			return &Linked{Type: tag, Raw: raw}, nil
		}
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	l := &Linked{Type: name, Raw: raw}
	switch e := v.(type) {
	case *Club:
		l.Club = e
	case *AnimeInfo:
		l.Anime = e
	case *MangaInfo:
		if name == "Ranobe" {
			l.Ranobe = e
		} else {
			l.Manga = e
		}
	}
	return l, nil
}
