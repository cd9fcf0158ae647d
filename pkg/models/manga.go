package models

import "time"

// MangaInfo is the short form of a manga or ranobe.
type MangaInfo struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Russian    string  `json:"russian"`
	Image      Image   `json:"image"`
	URL        string  `json:"url"`
	Kind       string  `json:"kind"`
	Score      Score   `json:"score"`
	Status     string  `json:"status"`
	Volumes    int     `json:"volumes"`
	Chapters   int     `json:"chapters"`
	AiredOn    *string `json:"aired_on"`
	ReleasedOn *string `json:"released_on"`
}

// RanobeInfo shares its shape with MangaInfo; ranobe are light novels and
// novels served under /api/ranobe.
type RanobeInfo = MangaInfo

// Manga is the full manga record returned by /api/mangas/:id.
type Manga struct {
	MangaInfo
	English            []*string   `json:"english"`
	Japanese           []string    `json:"japanese"`
	Synonyms           []string    `json:"synonyms"`
	LicenseNameRu      *string     `json:"license_name_ru"`
	Description        *string     `json:"description"`
	DescriptionHTML    string      `json:"description_html"`
	DescriptionSource  *string     `json:"description_source"`
	Franchise          *string     `json:"franchise"`
	Favoured           bool        `json:"favoured"`
	Anons              bool        `json:"anons"`
	Ongoing            bool        `json:"ongoing"`
	ThreadID           *int        `json:"thread_id"`
	TopicID            *int        `json:"topic_id"`
	MyAnimeListID      int         `json:"myanimelist_id"`
	RatesScoresStats   []StatCount `json:"rates_scores_stats"`
	RatesStatusesStats []StatCount `json:"rates_statuses_stats"`
	Licensors          []string    `json:"licensors"`
	Genres             []Genre     `json:"genres"`
	Publishers         []Publisher `json:"publishers"`
	UserRate           *UserRate   `json:"user_rate"`
	UpdatedAt          *time.Time  `json:"updated_at"`
}

// Ranobe is the full ranobe record returned by /api/ranobe/:id.
type Ranobe = Manga
