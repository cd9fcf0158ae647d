package models

import "time"

// UserRate is a title's entry in a user's list (/api/v2/user_rates).
type UserRate struct {
	ID         int        `json:"id"`
	UserID     *int       `json:"user_id"`
	TargetID   *int       `json:"target_id"`
	TargetType *string    `json:"target_type"`
	Score      int        `json:"score"`
	Status     string     `json:"status"`
	Text       *string    `json:"text"`
	TextHTML   *string    `json:"text_html"`
	Episodes   *int       `json:"episodes"`
	Chapters   *int       `json:"chapters"`
	Volumes    *int       `json:"volumes"`
	Rewatches  int        `json:"rewatches"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
