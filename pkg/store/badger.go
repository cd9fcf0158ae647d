package store

import (
	"context"
	"errors"
	"sync"

	"github.com/timshannon/badgerhold/v4"
)

// BadgerStore keeps credentials in an embedded BadgerDB via badgerhold,
// keyed by application name.
type BadgerStore struct {
	path string

	mu    sync.Mutex
	store *badgerhold.Store
}

var _ Store = (*BadgerStore)(nil)

// NewBadgerStore returns a closed store backed by the database at path.
func NewBadgerStore(path string) *BadgerStore {
	return &BadgerStore{path: path}
}

func (s *BadgerStore) backend() string { return DriverBadger }

func (s *BadgerStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		return nil
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = s.path
	opts.ValueDir = s.path
	opts.Logger = nil // badger logs to stderr otherwise

	store, err := badgerhold.Open(opts)
	if err != nil {
		return newStoreError(DriverBadger, "open", "", "failed to open badger store", err)
	}
	s.store = store
	return nil
}

func (s *BadgerStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	if err != nil {
		return newStoreError(DriverBadger, "close", "", "", err)
	}
	return nil
}

func (s *BadgerStore) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store == nil
}

func (s *BadgerStore) get(ctx context.Context, appName string) (*App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(appName)
}

func (s *BadgerStore) read(appName string) (*App, error) {
	if s.store == nil {
		return nil, newStoreError(DriverBadger, "fetch", appName, "", ErrClosed)
	}
	var app App
	err := s.store.Get(appName, &app)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, newStoreError(DriverBadger, "fetch", appName, "", err)
	}
	return &app, nil
}

func (s *BadgerStore) update(ctx context.Context, appName string, fn func(*App) (*App, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.read(appName)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		if err := s.store.Delete(appName, App{}); err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
			return newStoreError(DriverBadger, "delete", appName, "", err)
		}
		return nil
	}
	if err := s.store.Upsert(appName, next); err != nil {
		return newStoreError(DriverBadger, "save", appName, "", err)
	}
	return nil
}

func (s *BadgerStore) Save(ctx context.Context, rec Record) error {
	return saveDoc(ctx, s, rec)
}

func (s *BadgerStore) FetchByAccessToken(ctx context.Context, appName, accessToken string) (*Record, error) {
	return fetchDocByAccessToken(ctx, s, appName, accessToken)
}

func (s *BadgerStore) FetchByAuthCode(ctx context.Context, appName, authCode string) (*Record, error) {
	return fetchDocByAuthCode(ctx, s, appName, authCode)
}

func (s *BadgerStore) DeleteToken(ctx context.Context, appName, accessToken string) error {
	return deleteDocToken(ctx, s, appName, accessToken)
}

func (s *BadgerStore) DeleteAllTokens(ctx context.Context, appName string) error {
	return deleteDocApp(ctx, s, appName)
}
