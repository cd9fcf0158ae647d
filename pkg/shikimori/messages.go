package shikimori

import (
	"context"
	"net/http"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// MessagesService wraps /api/messages. Every call needs the messages scope.
type MessagesService struct {
	client *Client
}

// MessageInput is the body of a create or update call.
type MessageInput struct {
	Body   string `json:"body,omitempty"`
	FromID int    `json:"from_id,omitempty"`
	ToID   int    `json:"to_id,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

func (s *MessagesService) Get(ctx context.Context, id int) (*models.Message, error) {
	return Protected(ctx, s.client, enums.ScopeMessages, (*models.Message)(nil), func(ctx context.Context) (*models.Message, error) {
		return getOne[models.Message](ctx, s.client, "/api/messages/:id", Request{URL: s.client.endpoints.Message(id)})
	})
}

// Create sends a private message.
func (s *MessagesService) Create(ctx context.Context, in MessageInput) (*models.Message, error) {
	if in.Kind == "" {
		in.Kind = "Private"
	}
	return Protected(ctx, s.client, enums.ScopeMessages, (*models.Message)(nil), func(ctx context.Context) (*models.Message, error) {
		return getOne[models.Message](ctx, s.client, "/api/messages", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.Messages(),
			Body:   rooted("message", in),
		})
	})
}

func (s *MessagesService) Update(ctx context.Context, id int, body string) (*models.Message, error) {
	return Protected(ctx, s.client, enums.ScopeMessages, (*models.Message)(nil), func(ctx context.Context) (*models.Message, error) {
		return getOne[models.Message](ctx, s.client, "/api/messages/:id", Request{
			Method: http.MethodPatch,
			URL:    s.client.endpoints.Message(id),
			Body:   rooted("message", MessageInput{Body: body}),
		})
	})
}

func (s *MessagesService) Delete(ctx context.Context, id int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeMessages, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/messages/:id", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.Message(id),
		})
	})
}

// MarkRead sets the read flag of the given messages.
func (s *MessagesService) MarkRead(ctx context.Context, read bool, ids ...int) (bool, error) {
	body := map[string]any{"ids": joinIDs(ids), "is_read": read}
	return Protected(ctx, s.client, enums.ScopeMessages, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/messages/mark_read", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.MessagesMarkRead(),
			Body:   body,
		})
	})
}

// ReadAll marks every message of kind as read.
func (s *MessagesService) ReadAll(ctx context.Context, kind enums.MessageType) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeMessages, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/messages/read_all", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.MessagesReadAll(),
			Body:   map[string]any{"type": kind},
		})
	})
}

// DeleteAll removes every message of kind.
func (s *MessagesService) DeleteAll(ctx context.Context, kind enums.MessageType) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeMessages, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/messages/delete_all", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.MessagesDeleteAll(),
			Body:   map[string]any{"type": kind},
		})
	})
}
