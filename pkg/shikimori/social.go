package shikimori

import (
	"context"
	"net/http"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// FavoritesService wraps /api/favorites.
type FavoritesService struct {
	client *Client
}

// Create adds an entry to the current user's favourites. Kind only applies
// to people.
func (s *FavoritesService) Create(ctx context.Context, linkedType enums.FavoriteType, linkedID int, kind enums.PersonKind) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/favorites/:linked_type/:linked_id(/:kind)", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.Favorites(string(linkedType), linkedID, string(kind)),
		})
	})
}

func (s *FavoritesService) Delete(ctx context.Context, linkedType enums.FavoriteType, linkedID int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeUserRates, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/favorites/:linked_type/:linked_id", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.Favorites(string(linkedType), linkedID, ""),
		})
	})
}

// FriendsService wraps /api/friends.
type FriendsService struct {
	client *Client
}

func (s *FriendsService) Add(ctx context.Context, userID int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeFriends, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/friends/:id", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.Friend(userID),
		})
	})
}

func (s *FriendsService) Remove(ctx context.Context, userID int) (bool, error) {
	return Protected(ctx, s.client, enums.ScopeFriends, false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/friends/:id", Request{
			Method: http.MethodDelete,
			URL:    s.client.endpoints.Friend(userID),
		})
	})
}

// UserImagesService wraps /api/user_images.
type UserImagesService struct {
	client *Client
}

// Create uploads an image for use in comments and returns its links.
func (s *UserImagesService) Create(ctx context.Context, image File, linkedType string) (*models.CreatedUserImage, error) {
	if image.Field == "" {
		image.Field = "image"
	}
	var fields map[string]any
	if linkedType != "" {
		fields = map[string]any{"linked_type": linkedType}
	}
	return Protected(ctx, s.client, enums.ScopeComments, (*models.CreatedUserImage)(nil), func(ctx context.Context) (*models.CreatedUserImage, error) {
		return getOne[models.CreatedUserImage](ctx, s.client, "/api/user_images", Request{
			Method: http.MethodPost,
			URL:    s.client.endpoints.UserImages(),
			Body:   fields,
			Files:  []File{image},
			Quiet:  true,
		})
	})
}
