package models

import "time"

// UserImage holds avatar renditions.
type UserImage struct {
	X160 string `json:"x160"`
	X148 string `json:"x148"`
	X80  string `json:"x80"`
	X64  string `json:"x64"`
	X48  string `json:"x48"`
	X32  string `json:"x32"`
	X16  string `json:"x16"`
}

// UserInfo is the short form of a user embedded in topics and comments.
type UserInfo struct {
	ID           int        `json:"id"`
	Nickname     string     `json:"nickname"`
	Avatar       string     `json:"avatar"`
	Image        UserImage  `json:"image"`
	LastOnlineAt *time.Time `json:"last_online_at"`
	URL          *string    `json:"url"`
}

// User is a profile as returned by /api/users/:id and whoami.
type User struct {
	UserInfo
	Name         *string    `json:"name"`
	Sex          *string    `json:"sex"`
	FullYears    *int       `json:"full_years"`
	Locale       *string    `json:"locale"`
	LastOnline   *string    `json:"last_online"`
	Website      *string    `json:"website"`
	BirthOn      *string    `json:"birth_on"`
	Location     *string    `json:"location"`
	Banned       *bool      `json:"banned"`
	About        *string    `json:"about"`
	AboutHTML    *string    `json:"about_html"`
	CommonInfo   []string   `json:"common_info"`
	ShowComments *bool      `json:"show_comments"`
	InFriends    *bool      `json:"in_friends"`
	IsIgnored    *bool      `json:"is_ignored"`
	StyleID      *int       `json:"style_id"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

// UserListEntry is one row of /api/users/:id/anime_rates or manga_rates.
type UserListEntry struct {
	ID        int        `json:"id"`
	Score     int        `json:"score"`
	Status    string     `json:"status"`
	Text      *string    `json:"text"`
	TextHTML  *string    `json:"text_html"`
	Episodes  *int       `json:"episodes"`
	Chapters  *int       `json:"chapters"`
	Volumes   *int       `json:"volumes"`
	Rewatches int        `json:"rewatches"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	User      *UserInfo  `json:"user"`
	Anime     *AnimeInfo `json:"anime"`
	Manga     *MangaInfo `json:"manga"`
}

// Favourites groups a user's favourite entries by kind.
type Favourites struct {
	Animes     []FavouriteEntry `json:"animes"`
	Mangas     []FavouriteEntry `json:"mangas"`
	Ranobe     []FavouriteEntry `json:"ranobe"`
	Characters []FavouriteEntry `json:"characters"`
	People     []FavouriteEntry `json:"people"`
	Mangakas   []FavouriteEntry `json:"mangakas"`
	Seyu       []FavouriteEntry `json:"seyu"`
	Producers  []FavouriteEntry `json:"producers"`
}

// FavouriteEntry is a single favourite.
type FavouriteEntry struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Russian string  `json:"russian"`
	Image   string  `json:"image"`
	URL     *string `json:"url"`
}

// UnreadMessages counts unread items per mailbox.
type UnreadMessages struct {
	Messages      int `json:"messages"`
	News          int `json:"news"`
	Notifications int `json:"notifications"`
}
