package models

import "time"

// Comment is a comment on a topic, profile or review.
type Comment struct {
	ID              int        `json:"id"`
	UserID          int        `json:"user_id"`
	CommentableID   int        `json:"commentable_id"`
	CommentableType string     `json:"commentable_type"`
	Body            string     `json:"body"`
	HTMLBody        string     `json:"html_body"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
	IsOfftopic      bool       `json:"is_offtopic"`
	IsSummary       bool       `json:"is_summary"`
	CanBeEdited     bool       `json:"can_be_edited"`
	User            *UserInfo  `json:"user"`
}

// Message is a private message or notification.
type Message struct {
	ID        int        `json:"id"`
	Kind      string     `json:"kind"`
	Read      bool       `json:"read"`
	Body      *string    `json:"body"`
	HTMLBody  *string    `json:"html_body"`
	CreatedAt *time.Time `json:"created_at"`
	From      *UserInfo  `json:"from"`
	To        *UserInfo  `json:"to"`
}

// CreatedUserImage is the response to an image upload.
type CreatedUserImage struct {
	ID      int    `json:"id"`
	Preview string `json:"preview"`
	URL     string `json:"url"`
	BBCode  string `json:"bbcode"`
}

// CalendarEvent is an upcoming episode from /api/calendar.
type CalendarEvent struct {
	NextEpisode   int        `json:"next_episode"`
	NextEpisodeAt *time.Time `json:"next_episode_at"`
	Duration      *int       `json:"duration"`
	Anime         AnimeInfo  `json:"anime"`
}
