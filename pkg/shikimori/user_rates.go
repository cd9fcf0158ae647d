package shikimori

import (
	"context"
	"net/http"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// UserRatesService wraps /api/v2/user_rates.
type UserRatesService struct {
	client *Client
}

// UserRateFilter narrows a user rate listing.
type UserRateFilter struct {
	Page
	UserID     int
	TargetID   int
	TargetType enums.UserRateTarget
	Status     enums.UserRateStatus
}

// UserRateInput is the body of a create or update call.
type UserRateInput struct {
	UserID     int                  `json:"user_id,omitempty"`
	TargetID   int                  `json:"target_id,omitempty"`
	TargetType enums.UserRateTarget `json:"target_type,omitempty"`
	Status     enums.UserRateStatus `json:"status,omitempty"`
	Score      int                  `json:"score,omitempty"`
	Chapters   int                  `json:"chapters,omitempty"`
	Episodes   int                  `json:"episodes,omitempty"`
	Volumes    int                  `json:"volumes,omitempty"`
	Rewatches  int                  `json:"rewatches,omitempty"`
	Text       string               `json:"text,omitempty"`
}

func (in UserRateInput) normalized() UserRateInput {
	if in.Score != 0 {
		in.Score = clamp(in.Score, MaxRateScore)
	}
	return in
}

func (s *UserRatesService) List(ctx context.Context, f UserRateFilter) ([]models.UserRate, error) {
	q := f.Page.apply(newQuery(), 1000).
		int("user_id", f.UserID).
		int("target_id", f.TargetID).
		str("target_type", string(f.TargetType)).
		str("status", string(f.Status))
	return getList[models.UserRate](ctx, s.client, "/api/v2/user_rates", Request{
		URL:   s.client.endpoints.UserRates(),
		Query: q.values(),
	})
}

func (s *UserRatesService) Get(ctx context.Context, id int) (*models.UserRate, error) {
	return getOne[models.UserRate](ctx, s.client, "/api/v2/user_rates/:id", Request{URL: s.client.endpoints.UserRate(id)})
}

func (s *UserRatesService) Create(ctx context.Context, in UserRateInput) (*models.UserRate, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, (*models.UserRate)(nil), func(ctx context.Context) (*models.UserRate, error) {
		return getOne[models.UserRate](ctx, s.client, "/api/v2/user_rates", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.UserRates(),
			Body:   rooted("user_rate", in.normalized()),
		})
	})
}

func (s *UserRatesService) Update(ctx context.Context, id int, in UserRateInput) (*models.UserRate, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, (*models.UserRate)(nil), func(ctx context.Context) (*models.UserRate, error) {
		return getOne[models.UserRate](ctx, s.client, "/api/v2/user_rates/:id", Request{
			Method: http.MethodPatch,
			URL:    s.client.endpoints.UserRate(id),
			Body:   rooted("user_rate", in.normalized()),
		})
	})
}

// Increment bumps the episode or chapter counter by one.
func (s *UserRatesService) Increment(ctx context.Context, id int) (*models.UserRate, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, (*models.UserRate)(nil), func(ctx context.Context) (*models.UserRate, error) {
		return getOne[models.UserRate](ctx, s.client, "/api/v2/user_rates/:id/increment", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.UserRateIncrement(id),
		})
	})
}

func (s *UserRatesService) Delete(ctx context.Context, id int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/v2/user_rates/:id", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.UserRate(id),
		})
	})
}

// Cleanup deletes the whole anime or manga list of the current user.
func (s *UserRatesService) Cleanup(ctx context.Context, kind enums.UserRateType) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/user_rates/:type/cleanup", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.UserRatesCleanup(string(kind)),
		})
	})
}

// Reset zeroes all scores in the anime or manga list of the current user.
func (s *UserRatesService) Reset(ctx context.Context, kind enums.UserRateType) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/user_rates/:type/reset", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.UserRatesReset(string(kind)),
		})
	})
}
