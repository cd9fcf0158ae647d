package shikimori

import (
	"context"
	"net/http"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// ClubsService wraps /api/clubs.
type ClubsService struct {
	client *Client
}

// ClubInput is the body of an update call.
type ClubInput struct {
	Name              string           `json:"name,omitempty"`
	Description       string           `json:"description,omitempty"`
	DisplayImages     *bool            `json:"display_images,omitempty"`
	IsCensored        *bool            `json:"is_censored,omitempty"`
	IsNonThematic     *bool            `json:"is_non_thematic,omitempty"`
	IsShadowbanned    *bool            `json:"is_shadowbanned,omitempty"`
	JoinPolicy        enums.ClubPolicy `json:"join_policy,omitempty"`
	CommentPolicy     enums.ClubPolicy `json:"comment_policy,omitempty"`
	TopicPolicy       enums.ClubPolicy `json:"topic_policy,omitempty"`
	PagePolicy        enums.ClubPolicy `json:"page_policy,omitempty"`
	ImageUploadPolicy enums.ClubPolicy `json:"image_upload_policy,omitempty"`
	AnimeIDs          []int            `json:"anime_ids,omitempty"`
	MangaIDs          []int            `json:"manga_ids,omitempty"`
	RanobeIDs         []int            `json:"ranobe_ids,omitempty"`
	CharacterIDs      []int            `json:"character_ids,omitempty"`
	ClubIDs           []int            `json:"club_ids,omitempty"`
	AdminIDs          []int            `json:"admin_ids,omitempty"`
	BannedUserIDs     []int            `json:"banned_user_ids,omitempty"`
}

func (s *ClubsService) List(ctx context.Context, page Page, search string) ([]models.Club, error) {
	return getList[models.Club](ctx, s.client, "/api/clubs", Request{
		URL:   s.client.endpoints.Clubs(),
		Query: page.apply(newQuery(), 30).str("search", search).values(),
	})
}

func (s *ClubsService) Get(ctx context.Context, id int) (*models.Club, error) {
	return getOne[models.Club](ctx, s.client, "/api/clubs/:id", Request{URL: s.client.endpoints.Club(id)})
}

func (s *ClubsService) Update(ctx context.Context, id int, in ClubInput) (*models.Club, error) {
	return Protected(ctx, s.client, enums.ScopeClubs, (*models.Club)(nil), func(ctx context.Context) (*models.Club, error) {
		return getOne[models.Club](ctx, s.client, "/api/clubs/:id", Request{
			Method: http.MethodPatch,
			URL:    s.client.endpoints.Club(id),
			Body:   rooted("club", in),
		})
	})
}

func (s *ClubsService) Animes(ctx context.Context, id int, page Page) ([]models.AnimeInfo, error) {
	return getList[models.AnimeInfo](ctx, s.client, "/api/clubs/:id/animes", Request{
		URL:   s.client.endpoints.ClubAnimes(id),
		Query: page.apply(newQuery(), 20).values(),
	})
}

func (s *ClubsService) Mangas(ctx context.Context, id int, page Page) ([]models.MangaInfo, error) {
	return getList[models.MangaInfo](ctx, s.client, "/api/clubs/:id/mangas", Request{
		URL:   s.client.endpoints.ClubMangas(id),
		Query: page.apply(newQuery(), 20).values(),
	})
}

func (s *ClubsService) Ranobe(ctx context.Context, id int, page Page) ([]models.RanobeInfo, error) {
	return getList[models.RanobeInfo](ctx, s.client, "/api/clubs/:id/ranobe", Request{
		URL:   s.client.endpoints.ClubRanobe(id),
		Query: page.apply(newQuery(), 20).values(),
	})
}

func (s *ClubsService) Members(ctx context.Context, id int, page Page) ([]models.UserInfo, error) {
	return getList[models.UserInfo](ctx, s.client, "/api/clubs/:id/members", Request{
		URL:   s.client.endpoints.ClubMembers(id),
		Query: page.apply(newQuery(), 100).values(),
	})
}

func (s *ClubsService) Images(ctx context.Context, id int, page Page) ([]models.ClubImage, error) {
	return getList[models.ClubImage](ctx, s.client, "/api/clubs/:id/images", Request{
		URL:   s.client.endpoints.ClubImages(id),
		Query: page.apply(newQuery(), 100).values(),
	})
}

// UploadImage adds an image to the club gallery.
func (s *ClubsService) UploadImage(ctx context.Context, id int, image File) (*models.ClubImage, error) {
	if image.Field == "" {
		image.Field = "image"
	}
	return Protected(ctx, s.client, enums.ScopeClubs, (*models.ClubImage)(nil), func(ctx context.Context) (*models.ClubImage, error) {
		return getOne[models.ClubImage](ctx, s.client, "/api/clubs/:id/images", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.ClubImages(id),
			Files:  []File{image},
			Quiet:  true,
		})
	})
}

func (s *ClubsService) Join(ctx context.Context, id int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeClubs, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/clubs/:id/join", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.ClubJoin(id),
		})
	})
}

func (s *ClubsService) Leave(ctx context.Context, id int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeClubs, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/clubs/:id/leave", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.ClubLeave(id),
		})
	})
}
