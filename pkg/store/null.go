package store

import "context"

// NullStore persists nothing. Fetches always miss and deletes always succeed.
type NullStore struct{}

var _ Store = NullStore{}

// NewNullStore returns a store for callers who decline persistence.
func NewNullStore() NullStore { return NullStore{} }

func (NullStore) Open(ctx context.Context) error  { return nil }
func (NullStore) Close(ctx context.Context) error { return nil }
func (NullStore) Closed() bool                    { return false }

func (NullStore) Save(ctx context.Context, rec Record) error {
	return nil
}

func (NullStore) FetchByAccessToken(ctx context.Context, appName, accessToken string) (*Record, error) {
	return nil, nil
}

func (NullStore) FetchByAuthCode(ctx context.Context, appName, authCode string) (*Record, error) {
	return nil, nil
}

func (NullStore) DeleteToken(ctx context.Context, appName, accessToken string) error {
	return nil
}

func (NullStore) DeleteAllTokens(ctx context.Context, appName string) error {
	return nil
}
