package shikimori

import (
	"context"
	"strconv"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

// UsersService wraps /api/users.
type UsersService struct {
	client *Client
}

// List pages through all users, optionally filtered by nickname.
func (s *UsersService) List(ctx context.Context, page Page, search string) ([]models.UserInfo, error) {
	return getList[models.UserInfo](ctx, s.client, "/api/users", Request{
		URL:   s.client.endpoints.Users(),
		Query: page.apply(newQuery(), 100).str("search", search).values(),
	})
}

func (s *UsersService) Get(ctx context.Context, id int) (*models.User, error) {
	return getOne[models.User](ctx, s.client, "/api/users/:id", Request{URL: s.client.endpoints.User(id)})
}

func (s *UsersService) Info(ctx context.Context, id int) (*models.User, error) {
	return getOne[models.User](ctx, s.client, "/api/users/:id/info", Request{URL: s.client.endpoints.UserInfo(id)})
}

// WhoAmI returns the user the token belongs to.
func (s *UsersService) WhoAmI(ctx context.Context) (*models.User, error) {
	return Protected(ctx, s.client, "", (*models.User)(nil), func(ctx context.Context) (*models.User, error) {
		return getOne[models.User](ctx, s.client, "/api/users/whoami", Request{URL: s.client.endpoints.WhoAmI()})
	})
}

// SignOut invalidates the session cookie of the current user.
func (s *UsersService) SignOut(ctx context.Context) (bool, error) {
	return Protected(ctx, s.client, "", false, func(ctx context.Context) (bool, error) {
		return act(ctx, s.client, "/api/users/sign_out", Request{URL: s.client.endpoints.SignOut()})
	})
}

func (s *UsersService) Friends(ctx context.Context, id int, page Page) ([]models.UserInfo, error) {
	return getList[models.UserInfo](ctx, s.client, "/api/users/:id/friends", Request{
		URL:   s.client.endpoints.UserFriends(id),
		Query: page.apply(newQuery(), 100).values(),
	})
}

func (s *UsersService) Clubs(ctx context.Context, id int) ([]models.Club, error) {
	return getList[models.Club](ctx, s.client, "/api/users/:id/clubs", Request{URL: s.client.endpoints.UserClubs(id)})
}

// RatesFilter narrows a user's anime or manga list.
type RatesFilter struct {
	Page
	Status   enums.UserRateStatus
	Censored enums.Censorship
}

func (f RatesFilter) query() query {
	return f.Page.apply(newQuery(), 5000).
		str("status", string(f.Status)).
		str("censored", string(f.Censored))
}

func (s *UsersService) AnimeRates(ctx context.Context, id int, f RatesFilter) ([]models.UserListEntry, error) {
	return getList[models.UserListEntry](ctx, s.client, "/api/users/:id/anime_rates", Request{
		URL:   s.client.endpoints.UserAnimeRates(id),
		Query: f.query().values(),
	})
}

func (s *UsersService) MangaRates(ctx context.Context, id int, f RatesFilter) ([]models.UserListEntry, error) {
	return getList[models.UserListEntry](ctx, s.client, "/api/users/:id/manga_rates", Request{
		URL:   s.client.endpoints.UserMangaRates(id),
		Query: f.query().values(),
	})
}

func (s *UsersService) Favourites(ctx context.Context, id int) (*models.Favourites, error) {
	return getOne[models.Favourites](ctx, s.client, "/api/users/:id/favourites", Request{URL: s.client.endpoints.UserFavourites(id)})
}

// History lists a user's activity, optionally for one title.
func (s *UsersService) History(ctx context.Context, id int, page Page, target enums.HistoryTarget, targetID int) ([]models.History, error) {
	q := page.apply(newQuery(), 100).str("target_type", string(target))
	if targetID > 0 {
		q = q.str("target_id", strconv.Itoa(targetID))
	}
	return getList[models.History](ctx, s.client, "/api/users/:id/history", Request{
		URL:   s.client.endpoints.UserHistory(id),
		Query: q.values(),
	})
}

// UnreadMessages returns the unread counters of a user.
func (s *UsersService) UnreadMessages(ctx context.Context, id int) (*models.UnreadMessages, error) {
	return Protected(ctx, s.client, enums.ScopeMessages, (*models.UnreadMessages)(nil), func(ctx context.Context) (*models.UnreadMessages, error) {
		return getOne[models.UnreadMessages](ctx, s.client, "/api/users/:id/unread_messages", Request{URL: s.client.endpoints.UserUnreadMessages(id)})
	})
}

// Messages lists a user's mailbox of the given type.
func (s *UsersService) Messages(ctx context.Context, id int, page Page, kind enums.MessageType) ([]models.Message, error) {
	return Protected(ctx, s.client, enums.ScopeMessages, []models.Message{}, func(ctx context.Context) ([]models.Message, error) {
		return getList[models.Message](ctx, s.client, "/api/users/:id/messages", Request{
			URL:   s.client.endpoints.UserMessages(id),
			Query: page.apply(newQuery(), 100).str("type", string(kind)).values(),
		})
	})
}
