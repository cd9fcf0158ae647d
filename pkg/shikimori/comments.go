package shikimori

import (
	"context"
	"net/http"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// CommentsService wraps /api/comments.
type CommentsService struct {
	client *Client
}

// CommentInput is the body of a create or update call.
type CommentInput struct {
	Body            string                `json:"body,omitempty"`
	CommentableID   int                   `json:"commentable_id,omitempty"`
	CommentableType enums.CommentableType `json:"commentable_type,omitempty"`
	IsOfftopic      *bool                 `json:"is_offtopic,omitempty"`
}

// List returns the comments attached to one commentable.
func (s *CommentsService) List(ctx context.Context, commentableID int, commentableType enums.CommentableType, page Page, desc *bool) ([]models.Comment, error) {
	q := page.apply(newQuery(), 30).
		int("commentable_id", commentableID).
		str("commentable_type", string(commentableType)).
		flag("desc", desc)
	return getList[models.Comment](ctx, s.client, "/api/comments", Request{
		URL:   s.client.endpoints.Comments(),
		Query: q.values(),
	})
}

func (s *CommentsService) Get(ctx context.Context, id int) (*models.Comment, error) {
	return getOne[models.Comment](ctx, s.client, "/api/comments/:id", Request{URL: s.client.endpoints.Comment(id)})
}

// Create posts a comment. Broadcast sends it to all club members and only
// applies to club topics.
func (s *CommentsService) Create(ctx context.Context, in CommentInput, broadcast bool) (*models.Comment, error) {
	body := rooted("comment", in)
	if broadcast {
		body["broadcast"] = true
	}
	return Protected(ctx, s.client, enums.ScopeComments, (*models.Comment)(nil), func(ctx context.Context) (*models.Comment, error) {
		return getOne[models.Comment](ctx, s.client, "/api/comments", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.Comments(),
			Body:   body,
		})
	})
}

func (s *CommentsService) Update(ctx context.Context, id int, in CommentInput) (*models.Comment, error) {
	return Protected(ctx, s.client, enums.ScopeComments, (*models.Comment)(nil), func(ctx context.Context) (*models.Comment, error) {
		return getOne[models.Comment](ctx, s.client, "/api/comments/:id", Request{
			Method: http.MethodPatch,
			URL:    s.client.endpoints.Comment(id),
			Body:   rooted("comment", in),
		})
	})
}

func (s *CommentsService) Delete(ctx context.Context, id int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeComments, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/comments/:id", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.Comment(id),
		})
	})
}
