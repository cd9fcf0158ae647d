package shikimori

import (
	"context"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// MangasService wraps /api/mangas.
type MangasService struct {
	client *Client
}

// MangaFilter narrows a manga or ranobe listing. Zero fields are not sent.
type MangaFilter struct {
	Page
	Order      enums.MangaOrder
	Kind       []enums.MangaKind
	Status     []enums.MangaStatus
	Season     string
	Score      int
	Genre      []int
	Publisher  []int
	Franchise  []string
	Censored   enums.Censorship
	MyList     []enums.ListStatus
	IDs        []int
	ExcludeIDs []int
	Search     string
}

func (f MangaFilter) query() query {
	q := f.Page.apply(newQuery(), MaxLimit).
		str("order", string(f.Order)).
		str("season", f.Season).
		clamped("score", f.Score, MaxFilterScore).
		ids("genre", f.Genre).
		ids("publisher", f.Publisher).
		str("franchise", enums.Join(f.Franchise...)).
		str("censored", string(f.Censored)).
		ids("ids", f.IDs).
		ids("exclude_ids", f.ExcludeIDs).
		str("search", f.Search)
	q = enumList(q, "kind", f.Kind)
	q = enumList(q, "status", f.Status)
	return enumList(q, "mylist", f.MyList)
}

func (s *MangasService) List(ctx context.Context, f MangaFilter) ([]models.MangaInfo, error) {
	return getList[models.MangaInfo](ctx, s.client, "/api/mangas", Request{
		URL:   s.client.endpoints.Mangas(),
		Query: f.query().values(),
	})
}

func (s *MangasService) Get(ctx context.Context, id int) (*models.Manga, error) {
	return getOne[models.Manga](ctx, s.client, "/api/mangas/:id", Request{URL: s.client.endpoints.Manga(id)})
}

func (s *MangasService) Roles(ctx context.Context, id int) ([]models.Role, error) {
	return getList[models.Role](ctx, s.client, "/api/mangas/:id/roles", Request{URL: s.client.endpoints.MangaRoles(id)})
}

func (s *MangasService) Similar(ctx context.Context, id int) ([]models.MangaInfo, error) {
	return getList[models.MangaInfo](ctx, s.client, "/api/mangas/:id/similar", Request{URL: s.client.endpoints.MangaSimilar(id)})
}

func (s *MangasService) Related(ctx context.Context, id int) ([]models.Relation, error) {
	return getList[models.Relation](ctx, s.client, "/api/mangas/:id/related", Request{URL: s.client.endpoints.MangaRelated(id)})
}

func (s *MangasService) Franchise(ctx context.Context, id int) (*models.FranchiseTree, error) {
	return getOne[models.FranchiseTree](ctx, s.client, "/api/mangas/:id/franchise", Request{URL: s.client.endpoints.MangaFranchise(id)})
}

func (s *MangasService) ExternalLinks(ctx context.Context, id int) ([]models.ExternalLink, error) {
	return getList[models.ExternalLink](ctx, s.client, "/api/mangas/:id/external_links", Request{URL: s.client.endpoints.MangaExternalLinks(id)})
}

func (s *MangasService) Topics(ctx context.Context, id int, page Page) ([]models.Topic, error) {
	return getList[models.Topic](ctx, s.client, "/api/mangas/:id/topics", Request{
		URL:   s.client.endpoints.MangaTopics(id),
		Query: page.apply(newQuery(), 30).values(),
	})
}

// RanobesService wraps /api/ranobe.
type RanobesService struct {
	client *Client
}

// RanobeFilter narrows a ranobe listing. Kind values other than light and
// web novels are ignored by the server.
type RanobeFilter = MangaFilter

func (s *RanobesService) List(ctx context.Context, f RanobeFilter) ([]models.RanobeInfo, error) {
	return getList[models.RanobeInfo](ctx, s.client, "/api/ranobe", Request{
		URL:   s.client.endpoints.Ranobes(),
		Query: f.query().values(),
	})
}

func (s *RanobesService) Get(ctx context.Context, id int) (*models.Ranobe, error) {
	return getOne[models.Ranobe](ctx, s.client, "/api/ranobe/:id", Request{URL: s.client.endpoints.Ranobe(id)})
}

func (s *RanobesService) Similar(ctx context.Context, id int) ([]models.RanobeInfo, error) {
	return getList[models.RanobeInfo](ctx, s.client, "/api/ranobe/:id/similar", Request{URL: s.client.endpoints.RanobeSimilar(id)})
}

func (s *RanobesService) Related(ctx context.Context, id int) ([]models.Relation, error) {
	return getList[models.Relation](ctx, s.client, "/api/ranobe/:id/related", Request{URL: s.client.endpoints.RanobeRelated(id)})
}
