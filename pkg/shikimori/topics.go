package shikimori

import (
	"context"
	"net/http"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// TopicsService wraps /api/topics.
type TopicsService struct {
	client *Client
}

// TopicFilter narrows a topic listing.
type TopicFilter struct {
	Page
	Forum      enums.Forum
	LinkedID   int
	LinkedType enums.LinkedType
	Type       enums.TopicType
}

// TopicInput is the body of a create or update call.
type TopicInput struct {
	Body       string           `json:"body,omitempty"`
	ForumID    int              `json:"forum_id,omitempty"`
	LinkedID   int              `json:"linked_id,omitempty"`
	LinkedType enums.LinkedType `json:"linked_type,omitempty"`
	Title      string           `json:"title,omitempty"`
	Type       enums.TopicType  `json:"type,omitempty"`
	UserID     int              `json:"user_id,omitempty"`
}

func (s *TopicsService) List(ctx context.Context, f TopicFilter) ([]models.Topic, error) {
	q := f.Page.apply(newQuery(), 30).
		str("forum", string(f.Forum)).
		int("linked_id", f.LinkedID).
		str("linked_type", string(f.LinkedType)).
		str("type", string(f.Type))
	return getList[models.Topic](ctx, s.client, "/api/topics", Request{
		URL:   s.client.endpoints.Topics(),
		Query: q.values(),
	})
}

func (s *TopicsService) Get(ctx context.Context, id int) (*models.Topic, error) {
	return getOne[models.Topic](ctx, s.client, "/api/topics/:id", Request{URL: s.client.endpoints.Topic(id)})
}

// Updates lists news about database changes.
func (s *TopicsService) Updates(ctx context.Context, page Page) ([]models.Topic, error) {
	return getList[models.Topic](ctx, s.client, "/api/topics/updates", Request{
		URL:   s.client.endpoints.TopicUpdates(),
		Query: page.apply(newQuery(), 30).values(),
	})
}

// Hot lists the currently popular topics.
func (s *TopicsService) Hot(ctx context.Context, limit int) ([]models.Topic, error) {
	return getList[models.Topic](ctx, s.client, "/api/topics/hot", Request{
		URL:   s.client.endpoints.HotTopics(),
		Query: newQuery().clamped("limit", limit, 10).values(),
	})
}

func (s *TopicsService) Create(ctx context.Context, in TopicInput) (*models.Topic, error) {
	return Protected(ctx, s.client, enums.ScopeTopics, (*models.Topic)(nil), func(ctx context.Context) (*models.Topic, error) {
		return getOne[models.Topic](ctx, s.client, "/api/topics", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.Topics(),
			Body:   rooted("topic", in),
		})
	})
}

func (s *TopicsService) Update(ctx context.Context, id int, in TopicInput) (*models.Topic, error) {
	return Protected(ctx, s.client, enums.ScopeTopics, (*models.Topic)(nil), func(ctx context.Context) (*models.Topic, error) {
		return getOne[models.Topic](ctx, s.client, "/api/topics/:id", Request{
			Method: http.MethodPatch,
			URL:    s.client.endpoints.Topic(id),
			Body:   rooted("topic", in),
		})
	})
}

func (s *TopicsService) Delete(ctx context.Context, id int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeTopics, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/topics/:id", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.Topic(id),
		})
	})
}
