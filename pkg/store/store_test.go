package store

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendCase struct {
	name string
	// persistent backends keep data across Close/Open.
	persistent bool
	open       func(t *testing.T) Store
}

func backends(t *testing.T) []backendCase {
	t.Helper()
	return []backendCase{
		{
			name: "memory",
			open: func(t *testing.T) Store { return NewMemoryStore() },
		},
		{
			name:       "file",
			persistent: true,
			open:       func(t *testing.T) Store { return NewFileStore(t.TempDir()) },
		},
		{
			name:       "file-encrypted",
			persistent: true,
			open: func(t *testing.T) Store {
				return NewFileStore(t.TempDir(), WithPassphrase("correct horse"))
			},
		},
		{
			name:       "redis",
			persistent: true,
			open: func(t *testing.T) Store {
				mr := miniredis.RunT(t)
				return NewRedisStore(&redis.Options{Addr: mr.Addr()}, "")
			},
		},
		{
			name:       "sqlite",
			persistent: true,
			open: func(t *testing.T) Store {
				return NewSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"))
			},
		},
		{
			name:       "badger",
			persistent: true,
			open:       func(t *testing.T) Store { return NewBadgerStore(t.TempDir()) },
		},
	}
}

func openStore(t *testing.T, bc backendCase) Store {
	t.Helper()
	s := bc.open(t)
	require.True(t, s.Closed(), "new store should start closed")
	require.NoError(t, s.Open(context.Background()))
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func sampleRecord() Record {
	return Record{
		AppName:      "TestApp",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "urn:ietf:wg:oauth:2.0:oob",
		Token: Token{
			AuthCode:     "abc123",
			Scopes:       "user_rates+comments",
			AccessToken:  "T1",
			RefreshToken: "R1",
			ExpireAt:     1700000000,
		},
	}
}

func TestStore_ClosedOperationsFail(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			s := bc.open(t)

			err := s.Save(ctx, sampleRecord())
			assert.ErrorIs(t, err, ErrClosed)

			_, err = s.FetchByAccessToken(ctx, "TestApp", "T1")
			assert.ErrorIs(t, err, ErrClosed)

			err = s.DeleteAllTokens(ctx, "TestApp")
			assert.ErrorIs(t, err, ErrClosed)
		})
	}
}

func TestStore_SaveAndFetch(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			s := openStore(t, bc)
			require.NoError(t, s.Save(ctx, sampleRecord()))

			rec, err := s.FetchByAccessToken(ctx, "TestApp", "T1")
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, "TestApp", rec.AppName)
			assert.Equal(t, "client-id", rec.ClientID)
			assert.Equal(t, "client-secret", rec.ClientSecret)
			assert.Equal(t, "abc123", rec.AuthCode)
			assert.Equal(t, "R1", rec.RefreshToken)
			assert.Equal(t, int64(1700000000), rec.ExpireAt)
			assert.Equal(t, "comments+user_rates", rec.Scopes)

			rec, err = s.FetchByAuthCode(ctx, "TestApp", "abc123")
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, "T1", rec.AccessToken)

			rec, err = s.FetchByAccessToken(ctx, "TestApp", "nope")
			require.NoError(t, err)
			assert.Nil(t, rec)

			rec, err = s.FetchByAuthCode(ctx, "OtherApp", "abc123")
			require.NoError(t, err)
			assert.Nil(t, rec)
		})
	}
}

func TestStore_SaveReplacesMatchingToken(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			s := openStore(t, bc)
			require.NoError(t, s.Save(ctx, sampleRecord()))

			refreshed := sampleRecord()
			refreshed.Scopes = "comments user_rates"
			refreshed.AccessToken = "T2"
			refreshed.RefreshToken = "R2"
			require.NoError(t, s.Save(ctx, refreshed))

			old, err := s.FetchByAccessToken(ctx, "TestApp", "T1")
			require.NoError(t, err)
			assert.Nil(t, old, "refreshed token should replace the old one")

			rec, err := s.FetchByAuthCode(ctx, "TestApp", "abc123")
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, "T2", rec.AccessToken)
			assert.Equal(t, "R2", rec.RefreshToken)
		})
	}
}

func TestStore_SaveAppendsNewGeneration(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			s := openStore(t, bc)
			require.NoError(t, s.Save(ctx, sampleRecord()))

			second := sampleRecord()
			second.AuthCode = "def456"
			second.AccessToken = "T3"
			require.NoError(t, s.Save(ctx, second))

			first, err := s.FetchByAccessToken(ctx, "TestApp", "T1")
			require.NoError(t, err)
			require.NotNil(t, first)
			assert.Equal(t, "abc123", first.AuthCode)

			rec, err := s.FetchByAuthCode(ctx, "TestApp", "def456")
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.Equal(t, "T3", rec.AccessToken)
		})
	}
}

func TestStore_DeleteToken(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			s := openStore(t, bc)

			err := s.DeleteToken(ctx, "TestApp", "T1")
			assert.ErrorIs(t, err, ErrNotFound, "unknown app")

			require.NoError(t, s.Save(ctx, sampleRecord()))
			second := sampleRecord()
			second.AuthCode = "def456"
			second.AccessToken = "T3"
			require.NoError(t, s.Save(ctx, second))

			err = s.DeleteToken(ctx, "TestApp", "missing")
			assert.ErrorIs(t, err, ErrNotFound, "unknown token")

			require.NoError(t, s.DeleteToken(ctx, "TestApp", "T1"))
			rec, err := s.FetchByAccessToken(ctx, "TestApp", "T1")
			require.NoError(t, err)
			assert.Nil(t, rec)

			rec, err = s.FetchByAccessToken(ctx, "TestApp", "T3")
			require.NoError(t, err)
			require.NotNil(t, rec)

			// Removing the last token removes the app entry.
			require.NoError(t, s.DeleteToken(ctx, "TestApp", "T3"))
			err = s.DeleteAllTokens(ctx, "TestApp")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_DeleteAllTokens(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			s := openStore(t, bc)
			require.NoError(t, s.Save(ctx, sampleRecord()))

			require.NoError(t, s.DeleteAllTokens(ctx, "TestApp"))

			rec, err := s.FetchByAuthCode(ctx, "TestApp", "abc123")
			require.NoError(t, err)
			assert.Nil(t, rec)

			err = s.DeleteAllTokens(ctx, "TestApp")
			var storeErr *StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.Equal(t, "delete_all_tokens", storeErr.Op)
			assert.Equal(t, "TestApp", storeErr.AppName)
		})
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	for _, bc := range backends(t) {
		t.Run(bc.name, func(t *testing.T) {
			s := openStore(t, bc)
			require.NoError(t, s.Save(ctx, sampleRecord()))

			require.NoError(t, s.Close(ctx))
			assert.True(t, s.Closed())
			require.NoError(t, s.Open(ctx))
			assert.False(t, s.Closed())

			rec, err := s.FetchByAccessToken(ctx, "TestApp", "T1")
			require.NoError(t, err)
			if bc.persistent {
				require.NotNil(t, rec)
				assert.Equal(t, "abc123", rec.AuthCode)
			} else {
				assert.Nil(t, rec)
			}
		})
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	assert.False(t, s.Closed())
	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.Save(ctx, sampleRecord()))

	rec, err := s.FetchByAccessToken(ctx, "TestApp", "T1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = s.FetchByAuthCode(ctx, "TestApp", "abc123")
	require.NoError(t, err)
	assert.Nil(t, rec)

	assert.NoError(t, s.DeleteToken(ctx, "TestApp", "T1"))
	assert.NoError(t, s.DeleteAllTokens(ctx, "TestApp"))
	assert.NoError(t, s.Close(ctx))
}

func TestRedisStore_SharedClientStaysOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStoreWithClient(client, "test:")
	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.Save(ctx, sampleRecord()))
	assert.True(t, mr.Exists("test:TestApp"))

	require.NoError(t, s.Close(ctx))
	assert.NoError(t, client.Ping(ctx).Err())
}
