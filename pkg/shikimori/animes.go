package shikimori

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// AnimesService wraps /api/animes.
type AnimesService struct {
	client *Client
}

// AnimeFilter narrows an anime listing. Zero fields are not sent.
type AnimeFilter struct {
	Page
	Order      enums.AnimeOrder
	Kind       []enums.AnimeKind
	Status     []enums.AnimeStatus
	Season     string
	Score      int
	Duration   []enums.AnimeDuration
	Rating     []enums.AnimeRating
	Genre      []int
	Studio     []int
	Franchise  []string
	Censored   enums.Censorship
	MyList     []enums.ListStatus
	IDs        []int
	ExcludeIDs []int
	Search     string
}

func (f AnimeFilter) query() query {
	q := f.Page.apply(newQuery(), MaxLimit).
		str("order", string(f.Order)).
		str("season", f.Season).
		clamped("score", f.Score, MaxFilterScore).
		ids("genre", f.Genre).
		ids("studio", f.Studio).
		str("franchise", enums.Join(f.Franchise...)).
		str("censored", string(f.Censored)).
		ids("ids", f.IDs).
		ids("exclude_ids", f.ExcludeIDs).
		str("search", f.Search)
	q = enumList(q, "kind", f.Kind)
	q = enumList(q, "status", f.Status)
	q = enumList(q, "duration", f.Duration)
	q = enumList(q, "rating", f.Rating)
	return enumList(q, "mylist", f.MyList)
}

// List returns animes matching f.
func (s *AnimesService) List(ctx context.Context, f AnimeFilter) ([]models.AnimeInfo, error) {
	return getList[models.AnimeInfo](ctx, s.client, "/api/animes", Request{
		URL:   s.client.endpoints.Animes(),
		Query: f.query().values(),
	})
}

// Get returns one anime, or nil.
func (s *AnimesService) Get(ctx context.Context, id int) (*models.Anime, error) {
	return getOne[models.Anime](ctx, s.client, "/api/animes/:id", Request{URL: s.client.endpoints.Anime(id)})
}

func (s *AnimesService) Roles(ctx context.Context, id int) ([]models.Role, error) {
	return getList[models.Role](ctx, s.client, "/api/animes/:id/roles", Request{URL: s.client.endpoints.AnimeRoles(id)})
}

func (s *AnimesService) Similar(ctx context.Context, id int) ([]models.AnimeInfo, error) {
	return getList[models.AnimeInfo](ctx, s.client, "/api/animes/:id/similar", Request{URL: s.client.endpoints.AnimeSimilar(id)})
}

func (s *AnimesService) Related(ctx context.Context, id int) ([]models.Relation, error) {
	return getList[models.Relation](ctx, s.client, "/api/animes/:id/related", Request{URL: s.client.endpoints.AnimeRelated(id)})
}

func (s *AnimesService) Screenshots(ctx context.Context, id int) ([]models.Screenshot, error) {
	return getList[models.Screenshot](ctx, s.client, "/api/animes/:id/screenshots", Request{URL: s.client.endpoints.AnimeScreenshots(id)})
}

func (s *AnimesService) Franchise(ctx context.Context, id int) (*models.FranchiseTree, error) {
	return getOne[models.FranchiseTree](ctx, s.client, "/api/animes/:id/franchise", Request{URL: s.client.endpoints.AnimeFranchise(id)})
}

func (s *AnimesService) ExternalLinks(ctx context.Context, id int) ([]models.ExternalLink, error) {
	return getList[models.ExternalLink](ctx, s.client, "/api/animes/:id/external_links", Request{URL: s.client.endpoints.AnimeExternalLinks(id)})
}

// Topics lists discussion topics of an anime, optionally by kind and episode.
func (s *AnimesService) Topics(ctx context.Context, id int, page Page, kind enums.AnimeTopicKind, episode int) ([]models.Topic, error) {
	q := page.apply(newQuery(), 30).str("kind", string(kind))
	if episode > 0 {
		q = q.str("episode", strconv.Itoa(episode))
	}
	return getList[models.Topic](ctx, s.client, "/api/animes/:id/topics", Request{
		URL:   s.client.endpoints.AnimeTopics(id),
		Query: q.values(),
	})
}

// Videos lists videos attached to an anime.
func (s *AnimesService) Videos(ctx context.Context, id int) ([]models.Video, error) {
	return getList[models.Video](ctx, s.client, "/api/animes/:id/videos", Request{URL: s.client.endpoints.AnimeVideos(id)})
}

// VideoInput describes a video to attach to an anime.
type VideoInput struct {
	Kind enums.VideoKind `json:"kind"`
	Name string          `json:"name"`
	URL  string          `json:"url"`
}

// CreateVideo attaches a video to an anime. Requires the content scope.
func (s *AnimesService) CreateVideo(ctx context.Context, id int, in VideoInput) (*models.Video, error) {
	return Protected(ctx, s.client, enums.ScopeContent, (*models.Video)(nil), func(ctx context.Context) (*models.Video, error) {
		return getOne[models.Video](ctx, s.client, "/api/animes/:id/videos", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.AnimeVideos(id),
			Body:   rooted("video", in),
		})
	})
}

// DeleteVideo removes a video from an anime. Requires the content scope.
func (s *AnimesService) DeleteVideo(ctx context.Context, id, videoID int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeContent, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/animes/:id/videos/:video_id", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.AnimeVideo(id, videoID),
		})
	})
}
