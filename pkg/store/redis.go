package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces credential keys.
const DefaultRedisPrefix = "shiki:credentials:"

const redisMaxTxRetries = 5

// RedisStore keeps one JSON document per application under prefix+name.
// Mutations use WATCH/MULTI so concurrent writers retry instead of
// overwriting each other.
type RedisStore struct {
	opts   *redis.Options
	prefix string

	mu     sync.RWMutex
	client redis.UniversalClient
	owned  bool
	closed bool
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a closed store that dials opts on Open and closes
// the connection on Close.
func NewRedisStore(opts *redis.Options, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{opts: opts, prefix: prefix, owned: true, closed: true}
}

// NewRedisStoreWithClient wraps an existing client. Close leaves the
// client open.
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, closed: true}
}

func (s *RedisStore) backend() string { return DriverRedis }

func (s *RedisStore) key(appName string) string {
	return s.prefix + appName
}

func (s *RedisStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		s.client = redis.NewClient(s.opts)
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return newStoreError(DriverRedis, "open", "", "ping failed", err)
	}
	s.closed = false
	return nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.owned && s.client != nil {
		err := s.client.Close()
		s.client = nil
		if err != nil {
			return newStoreError(DriverRedis, "close", "", "", err)
		}
	}
	return nil
}

func (s *RedisStore) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *RedisStore) conn() redis.UniversalClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

func decodeApp(data []byte) (*App, error) {
	var app App
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *RedisStore) get(ctx context.Context, appName string) (*App, error) {
	data, err := s.conn().Get(ctx, s.key(appName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, newStoreError(DriverRedis, "fetch", appName, "", err)
	}
	app, err := decodeApp(data)
	if err != nil {
		return nil, newStoreError(DriverRedis, "fetch", appName, "corrupt entry", err)
	}
	return app, nil
}

func (s *RedisStore) update(ctx context.Context, appName string, fn func(*App) (*App, error)) error {
	key := s.key(appName)
	txf := func(tx *redis.Tx) error {
		var current *App
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if current, err = decodeApp(data); err != nil {
				return newStoreError(DriverRedis, "update", appName, "corrupt entry", err)
			}
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(ctx, key)
				return nil
			}
			payload, err := json.Marshal(next)
			if err != nil {
				return err
			}
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}

	client := s.conn()
	for i := 0; i < redisMaxTxRetries; i++ {
		err := client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		var storeErr *StoreError
		if err != nil && !errors.As(err, &storeErr) {
			return newStoreError(DriverRedis, "update", appName, "", err)
		}
		return err
	}
	return newStoreError(DriverRedis, "update", appName, "too many concurrent writers", redis.TxFailedErr)
}

func (s *RedisStore) Save(ctx context.Context, rec Record) error {
	return saveDoc(ctx, s, rec)
}

func (s *RedisStore) FetchByAccessToken(ctx context.Context, appName, accessToken string) (*Record, error) {
	return fetchDocByAccessToken(ctx, s, appName, accessToken)
}

func (s *RedisStore) FetchByAuthCode(ctx context.Context, appName, authCode string) (*Record, error) {
	return fetchDocByAuthCode(ctx, s, appName, authCode)
}

func (s *RedisStore) DeleteToken(ctx context.Context, appName, accessToken string) error {
	return deleteDocToken(ctx, s, appName, accessToken)
}

func (s *RedisStore) DeleteAllTokens(ctx context.Context, appName string) error {
	return deleteDocApp(ctx, s, appName)
}
