package store

import (
	"context"
	"sync"
)

// MemoryStore keeps credentials in a map for the lifetime of the process.
// Close clears everything.
type MemoryStore struct {
	mu     sync.RWMutex
	apps   map[string]*App
	closed bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a closed, empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{apps: make(map[string]*App), closed: true}
}

func (s *MemoryStore) backend() string { return DriverMemory }

func (s *MemoryStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = false
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = make(map[string]*App)
	s.closed = true
	return nil
}

func (s *MemoryStore) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

func (s *MemoryStore) get(ctx context.Context, appName string) (*App, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if app, ok := s.apps[appName]; ok {
		return app.clone(), nil
	}
	return nil, nil
}

func (s *MemoryStore) update(ctx context.Context, appName string, fn func(*App) (*App, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current *App
	if app, ok := s.apps[appName]; ok {
		current = app.clone()
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		delete(s.apps, appName)
		return nil
	}
	s.apps[appName] = next
	return nil
}

// snapshot returns a copy of all entries; the file store serialises it.
func (s *MemoryStore) snapshot() map[string]*App {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*App, len(s.apps))
	for name, app := range s.apps {
		out[name] = app.clone()
	}
	return out
}

func (s *MemoryStore) Save(ctx context.Context, rec Record) error {
	return saveDoc(ctx, s, rec)
}

func (s *MemoryStore) FetchByAccessToken(ctx context.Context, appName, accessToken string) (*Record, error) {
	return fetchDocByAccessToken(ctx, s, appName, accessToken)
}

func (s *MemoryStore) FetchByAuthCode(ctx context.Context, appName, authCode string) (*Record, error) {
	return fetchDocByAuthCode(ctx, s, appName, authCode)
}

func (s *MemoryStore) DeleteToken(ctx context.Context, appName, accessToken string) error {
	return deleteDocToken(ctx, s, appName, accessToken)
}

func (s *MemoryStore) DeleteAllTokens(ctx context.Context, appName string) error {
	return deleteDocApp(ctx, s, appName)
}
