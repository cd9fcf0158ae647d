package models

import "time"

// AnimeInfo is the short form of an anime used in listings and links.
type AnimeInfo struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Russian       string  `json:"russian"`
	Image         Image   `json:"image"`
	URL           string  `json:"url"`
	Kind          string  `json:"kind"`
	Score         Score   `json:"score"`
	Status        string  `json:"status"`
	Episodes      int     `json:"episodes"`
	EpisodesAired int     `json:"episodes_aired"`
	AiredOn       *string `json:"aired_on"`
	ReleasedOn    *string `json:"released_on"`
}

// Anime is the full anime record returned by /api/animes/:id.
type Anime struct {
	AnimeInfo
	Rating             string       `json:"rating"`
	English            []*string    `json:"english"`
	Japanese           []string     `json:"japanese"`
	Synonyms           []string     `json:"synonyms"`
	LicenseNameRu      *string      `json:"license_name_ru"`
	Duration           int          `json:"duration"`
	Description        *string      `json:"description"`
	DescriptionHTML    string       `json:"description_html"`
	DescriptionSource  *string      `json:"description_source"`
	Franchise          *string      `json:"franchise"`
	Favoured           bool         `json:"favoured"`
	Anons              bool         `json:"anons"`
	Ongoing            bool         `json:"ongoing"`
	ThreadID           *int         `json:"thread_id"`
	TopicID            *int         `json:"topic_id"`
	MyAnimeListID      int          `json:"myanimelist_id"`
	RatesScoresStats   []StatCount  `json:"rates_scores_stats"`
	RatesStatusesStats []StatCount  `json:"rates_statuses_stats"`
	UpdatedAt          *time.Time   `json:"updated_at"`
	NextEpisodeAt      *time.Time   `json:"next_episode_at"`
	Fansubbers         []string     `json:"fansubbers"`
	Fandubbers         []string     `json:"fandubbers"`
	Licensors          []string     `json:"licensors"`
	Genres             []Genre      `json:"genres"`
	Studios            []Studio     `json:"studios"`
	Videos             []Video      `json:"videos"`
	Screenshots        []Screenshot `json:"screenshots"`
	UserRate           *UserRate    `json:"user_rate"`
}
