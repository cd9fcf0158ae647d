package models

// Logo holds club logo renditions.
type Logo struct {
	Original string `json:"original"`
	Main     string `json:"main"`
	X96      string `json:"x96"`
	X73      string `json:"x73"`
	X48      string `json:"x48"`
}

// Club is a user club.
type Club struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Logo            Logo            `json:"logo"`
	IsCensored      bool            `json:"is_censored"`
	JoinPolicy      string          `json:"join_policy"`
	CommentPolicy   string          `json:"comment_policy"`
	Description     *string         `json:"description"`
	DescriptionHTML *string         `json:"description_html"`
	ThreadID        *int            `json:"thread_id"`
	TopicID         *int            `json:"topic_id"`
	UserRole        *string         `json:"user_role"`
	StyleID         *int            `json:"style_id"`
	Mangas          []MangaInfo     `json:"mangas"`
	Characters      []CharacterInfo `json:"characters"`
	Images          []ClubImage     `json:"images"`
}

// ClubImage is an image uploaded to a club gallery.
type ClubImage struct {
	ID          int    `json:"id"`
	OriginalURL string `json:"original_url"`
	MainURL     string `json:"main_url"`
	PreviewURL  string `json:"preview_url"`
	CanDestroy  *bool  `json:"can_destroy"`
	UserID      int    `json:"user_id"`
}
