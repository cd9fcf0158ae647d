// Package endpoints builds the fully-qualified URLs of the Shikimori API.
package endpoints

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultDomain is the production host of the API.
	DefaultDomain = "shikimori.one"
	// OutOfBandRedirectURI makes the authorize page display the code instead
	// of redirecting.
	OutOfBandRedirectURI = "urn:ietf:wg:oauth:2.0:oob"
)

// Endpoints maps logical operations onto URLs. The zero value is not usable;
// build one with New or ForDomain.
type Endpoints struct {
	base   string
	baseV2 string
	oauth  string
}

// New roots every endpoint at root, e.g. "https://shikimori.one" or a test
// server URL.
func New(root string) *Endpoints {
	root = strings.TrimRight(root, "/")
	return &Endpoints{
		base:   root + "/api",
		baseV2: root + "/api/v2",
		oauth:  root + "/oauth",
	}
}

// ForDomain roots every endpoint at https://domain.
func ForDomain(domain string) *Endpoints {
	if domain == "" {
		domain = DefaultDomain
	}
	return New("https://" + domain)
}

func (e *Endpoints) Base() string   { return e.base }
func (e *Endpoints) BaseV2() string { return e.baseV2 }

// OAuth

func (e *Endpoints) OAuthToken() string     { return e.oauth + "/token" }
func (e *Endpoints) OAuthAuthorize() string { return e.oauth + "/authorize" }

// AuthorizationURL is the page a human visits to obtain an auth code.
func (e *Endpoints) AuthorizationURL(clientID, redirectURI string, scopes []string) string {
	if redirectURI == "" {
		redirectURI = OutOfBandRedirectURI
	}
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(scopes, " "))
	return e.OAuthAuthorize() + "?" + q.Encode()
}

// Animes

func (e *Endpoints) Animes() string                 { return e.base + "/animes" }
func (e *Endpoints) Anime(id int) string            { return fmt.Sprintf("%s/%d", e.Animes(), id) }
func (e *Endpoints) AnimeRoles(id int) string       { return e.Anime(id) + "/roles" }
func (e *Endpoints) AnimeSimilar(id int) string     { return e.Anime(id) + "/similar" }
func (e *Endpoints) AnimeRelated(id int) string     { return e.Anime(id) + "/related" }
func (e *Endpoints) AnimeScreenshots(id int) string { return e.Anime(id) + "/screenshots" }
func (e *Endpoints) AnimeFranchise(id int) string   { return e.Anime(id) + "/franchise" }
func (e *Endpoints) AnimeExternalLinks(id int) string {
	return e.Anime(id) + "/external_links"
}
func (e *Endpoints) AnimeTopics(id int) string { return e.Anime(id) + "/topics" }
func (e *Endpoints) AnimeVideos(id int) string { return e.Anime(id) + "/videos" }
func (e *Endpoints) AnimeVideo(id, videoID int) string {
	return fmt.Sprintf("%s/%d", e.AnimeVideos(id), videoID)
}

// Mangas

func (e *Endpoints) Mangas() string             { return e.base + "/mangas" }
func (e *Endpoints) Manga(id int) string        { return fmt.Sprintf("%s/%d", e.Mangas(), id) }
func (e *Endpoints) MangaRoles(id int) string   { return e.Manga(id) + "/roles" }
func (e *Endpoints) MangaSimilar(id int) string { return e.Manga(id) + "/similar" }
func (e *Endpoints) MangaRelated(id int) string { return e.Manga(id) + "/related" }
func (e *Endpoints) MangaFranchise(id int) string {
	return e.Manga(id) + "/franchise"
}
func (e *Endpoints) MangaExternalLinks(id int) string {
	return e.Manga(id) + "/external_links"
}
func (e *Endpoints) MangaTopics(id int) string { return e.Manga(id) + "/topics" }

// Ranobe

func (e *Endpoints) Ranobes() string             { return e.base + "/ranobe" }
func (e *Endpoints) Ranobe(id int) string        { return fmt.Sprintf("%s/%d", e.Ranobes(), id) }
func (e *Endpoints) RanobeSimilar(id int) string { return e.Ranobe(id) + "/similar" }
func (e *Endpoints) RanobeRelated(id int) string { return e.Ranobe(id) + "/related" }

// Users

func (e *Endpoints) Users() string                    { return e.base + "/users" }
func (e *Endpoints) User(id int) string               { return fmt.Sprintf("%s/%d", e.Users(), id) }
func (e *Endpoints) UserInfo(id int) string           { return e.User(id) + "/info" }
func (e *Endpoints) WhoAmI() string                   { return e.Users() + "/whoami" }
func (e *Endpoints) SignOut() string                  { return e.Users() + "/sign_out" }
func (e *Endpoints) UserFriends(id int) string        { return e.User(id) + "/friends" }
func (e *Endpoints) UserClubs(id int) string          { return e.User(id) + "/clubs" }
func (e *Endpoints) UserAnimeRates(id int) string     { return e.User(id) + "/anime_rates" }
func (e *Endpoints) UserMangaRates(id int) string     { return e.User(id) + "/manga_rates" }
func (e *Endpoints) UserFavourites(id int) string     { return e.User(id) + "/favourites" }
func (e *Endpoints) UserMessages(id int) string       { return e.User(id) + "/messages" }
func (e *Endpoints) UserUnreadMessages(id int) string { return e.User(id) + "/unread_messages" }
func (e *Endpoints) UserHistory(id int) string        { return e.User(id) + "/history" }

// User rates

func (e *Endpoints) UserRates() string               { return e.baseV2 + "/user_rates" }
func (e *Endpoints) UserRate(id int) string          { return fmt.Sprintf("%s/%d", e.UserRates(), id) }
func (e *Endpoints) UserRateIncrement(id int) string { return e.UserRate(id) + "/increment" }

// UserRatesCleanup resets a user's whole anime or manga list (v1 API).
func (e *Endpoints) UserRatesCleanup(kind string) string {
	return e.base + "/user_rates/" + kind + "/cleanup"
}

// UserRatesReset zeroes the scores of a user's anime or manga list (v1 API).
func (e *Endpoints) UserRatesReset(kind string) string {
	return e.base + "/user_rates/" + kind + "/reset"
}

// Topics

func (e *Endpoints) Topics() string       { return e.base + "/topics" }
func (e *Endpoints) Topic(id int) string  { return fmt.Sprintf("%s/%d", e.Topics(), id) }
func (e *Endpoints) TopicUpdates() string { return e.Topics() + "/updates" }
func (e *Endpoints) HotTopics() string    { return e.Topics() + "/hot" }

// Clubs

func (e *Endpoints) Clubs() string             { return e.base + "/clubs" }
func (e *Endpoints) Club(id int) string        { return fmt.Sprintf("%s/%d", e.Clubs(), id) }
func (e *Endpoints) ClubAnimes(id int) string  { return e.Club(id) + "/animes" }
func (e *Endpoints) ClubMangas(id int) string  { return e.Club(id) + "/mangas" }
func (e *Endpoints) ClubRanobe(id int) string  { return e.Club(id) + "/ranobe" }
func (e *Endpoints) ClubMembers(id int) string { return e.Club(id) + "/members" }
func (e *Endpoints) ClubImages(id int) string  { return e.Club(id) + "/images" }
func (e *Endpoints) ClubJoin(id int) string    { return e.Club(id) + "/join" }
func (e *Endpoints) ClubLeave(id int) string   { return e.Club(id) + "/leave" }

// Comments and messages

func (e *Endpoints) Comments() string          { return e.base + "/comments" }
func (e *Endpoints) Comment(id int) string     { return fmt.Sprintf("%s/%d", e.Comments(), id) }
func (e *Endpoints) Messages() string          { return e.base + "/messages" }
func (e *Endpoints) Message(id int) string     { return fmt.Sprintf("%s/%d", e.Messages(), id) }
func (e *Endpoints) MessagesMarkRead() string  { return e.Messages() + "/mark_read" }
func (e *Endpoints) MessagesReadAll() string   { return e.Messages() + "/read_all" }
func (e *Endpoints) MessagesDeleteAll() string { return e.Messages() + "/delete_all" }

// Catalogue

func (e *Endpoints) Genres() string     { return e.base + "/genres" }
func (e *Endpoints) Studios() string    { return e.base + "/studios" }
func (e *Endpoints) Publishers() string { return e.base + "/publishers" }
func (e *Endpoints) Forums() string     { return e.base + "/forums" }
func (e *Endpoints) Calendar() string   { return e.base + "/calendar" }

// Social

// Favorites adds or removes a favourite; kind is only used for people.
func (e *Endpoints) Favorites(linkedType string, linkedID int, kind string) string {
	u := fmt.Sprintf("%s/favorites/%s/%d", e.base, linkedType, linkedID)
	if kind != "" {
		u += "/" + kind
	}
	return u
}

func (e *Endpoints) Friend(id int) string { return fmt.Sprintf("%s/friends/%d", e.base, id) }
func (e *Endpoints) UserImages() string   { return e.base + "/user_images" }
