package shikimori

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/models"
)

func TestAuthorize_RestrictedClientNeverCallsOut(t *testing.T) {
	api := newFakeAPI(t)
	api.reply("GET /api/genres", `[{"id":1,"name":"Action"}]`)
	c := openTestClient(t, api, Config{AppName: "TestApp"})

	user, err := c.Users.WhoAmI(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, user)

	ok, err := c.Clubs.Join(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, api.apiCalls())

	genres, err := c.Catalog.Genres(context.Background())
	require.NoError(t, err)
	assert.Len(t, genres, 1)

	calls := api.apiCalls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Auth, "restricted clients send no bearer token")
	assert.Empty(t, api.tokenRequests())
}

func TestAuthorize_MissingScope(t *testing.T) {
	api := newFakeAPI(t, tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"})
	c := openTestClient(t, api, testConfig())

	ok, err := c.Authorize(context.Background(), enums.ScopeClubs)
	assert.NoError(t, err)
	assert.False(t, ok)

	joined, err := c.Clubs.Join(context.Background(), 1)
	assert.NoError(t, err)
	assert.False(t, joined)

	msg, err := c.Messages.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, msg)
	assert.Empty(t, api.apiCalls())

	ok, err = c.Authorize(context.Background(), "")
	assert.NoError(t, err)
	assert.True(t, ok, "the empty scope only needs a token")
}

func TestAuthorize_GrantedScopeComesFromServer(t *testing.T) {
	api := newFakeAPI(t, tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates"})
	c := openTestClient(t, api, testConfig())

	ok, err := c.Authorize(context.Background(), enums.ScopeComments)
	assert.NoError(t, err)
	assert.False(t, ok, "comments was requested but not granted")

	ok, err = c.Authorize(context.Background(), enums.ScopeUserRates)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthorize_RefreshesAfterTTL(t *testing.T) {
	api := newFakeAPI(t,
		tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"},
		tokenPair{Access: "T2", Refresh: "R2", Scope: "user_rates comments"},
	)
	api.reply("GET /api/users/whoami", whoamiBody)
	c := openTestClient(t, api, testConfig())
	require.Len(t, api.tokenRequests(), 1)

	c.now = func() time.Time { return time.Now().Add(TokenTTL + time.Hour) }

	user, err := c.Users.WhoAmI(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)

	tokenCalls := api.tokenRequests()
	require.Len(t, tokenCalls, 2)
	assert.Equal(t, "refresh_token", tokenCalls[1].Get("grant_type"))

	calls := api.apiCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer T2", calls[0].Auth, "the refresh happens before the call")
}

func TestAuthorize_ConcurrentCallersShareOneRefresh(t *testing.T) {
	api := newFakeAPI(t,
		tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"},
		tokenPair{Access: "T2", Refresh: "R2", Scope: "user_rates comments"},
	)
	api.reply("GET /api/users/whoami", whoamiBody)
	c := openTestClient(t, api, testConfig())
	c.now = func() time.Time { return time.Now().Add(TokenTTL + time.Hour) }

	calls := make([]Call[*models.User], 8)
	for i := range calls {
		calls[i] = c.Users.WhoAmI
	}
	for _, o := range Gather(context.Background(), calls...) {
		require.NoError(t, o.Err)
		assert.NotNil(t, o.Value)
	}

	assert.Len(t, api.tokenRequests(), 2, "one code exchange and one refresh")
	for _, call := range api.apiCalls() {
		assert.Equal(t, "Bearer T2", call.Auth)
	}
}

func TestAuthorize_RefreshFailurePropagates(t *testing.T) {
	api := newFakeAPI(t, tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"})
	c := openTestClient(t, api, testConfig())
	c.now = func() time.Time { return time.Now().Add(TokenTTL + time.Hour) }

	user, err := c.Users.WhoAmI(context.Background())
	assert.Nil(t, user)
	var tokErr *TokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, "refresh_token", tokErr.GrantType)
	assert.Empty(t, api.apiCalls())
}

func TestAuthorize_CancelledCallerDoesNotAbortSharedRefresh(t *testing.T) {
	api := newFakeAPI(t,
		tokenPair{Access: "T1", Refresh: "R1", Scope: "user_rates comments"},
		tokenPair{Access: "T2", Refresh: "R2", Scope: "user_rates comments"},
	)
	c := openTestClient(t, api, testConfig())
	arrived, release := api.holdTokens()
	t.Cleanup(release)
	c.now = func() time.Time { return time.Now().Add(TokenTTL + time.Hour) }

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Authorize(first, "")
		firstErr <- err
	}()

	select {
	case <-arrived:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh request never reached the server")
	}

	secondErr := make(chan error, 1)
	go func() {
		_, err := c.Authorize(context.Background(), "")
		secondErr <- err
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	release()
	select {
	case err := <-secondErr:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}

	assert.Equal(t, "T2", c.AccessToken(), "the exchange completed despite the cancelled caller")
	assert.Len(t, api.tokenRequests(), 2, "one code exchange and one refresh")
}
