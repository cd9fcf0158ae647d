package shikimori

import (
	"context"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// CatalogService wraps the reference listings: genres, studios,
// publishers, forums and the airing calendar.
type CatalogService struct {
	client *Client
}

func (s *CatalogService) Genres(ctx context.Context) ([]models.Genre, error) {
	return getList[models.Genre](ctx, s.client, "/api/genres", Request{URL: s.client.endpoints.Genres()})
}

func (s *CatalogService) Studios(ctx context.Context) ([]models.Studio, error) {
	return getList[models.Studio](ctx, s.client, "/api/studios", Request{URL: s.client.endpoints.Studios()})
}

func (s *CatalogService) Publishers(ctx context.Context) ([]models.Publisher, error) {
	return getList[models.Publisher](ctx, s.client, "/api/publishers", Request{URL: s.client.endpoints.Publishers()})
}

func (s *CatalogService) Forums(ctx context.Context) ([]models.Forum, error) {
	return getList[models.Forum](ctx, s.client, "/api/forums", Request{URL: s.client.endpoints.Forums()})
}

// Calendar lists upcoming episodes.
func (s *CatalogService) Calendar(ctx context.Context, censored enums.Censorship) ([]models.CalendarEvent, error) {
	return getList[models.CalendarEvent](ctx, s.client, "/api/calendar", Request{
		URL:   s.client.endpoints.Calendar(),
		Query: newQuery().str("censored", string(censored)).values(),
	})
}
