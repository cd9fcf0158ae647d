// Package store persists OAuth credentials per application so that an
// authorization code, which the server redeems only once, stays tied to the
// token pair it produced across process restarts.
//
// An application entry holds the client registration and an ordered list of
// token generations, one per (auth code, scopes) combination. Backends must
// be opened before use and closed afterwards.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/shiki/pkg/enums"
)

// Driver names accepted by New.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverNull   = "null"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

var (
	// ErrNotFound is wrapped by StoreError when an app or token is unknown.
	ErrNotFound = errors.New("not found")
	// ErrClosed is wrapped by StoreError when a closed store is used.
	ErrClosed = errors.New("store is closed")
)

// Token is one generation of credentials for an application.
type Token struct {
	AuthCode     string `json:"auth_code"`
	Scopes       string `json:"scopes"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpireAt     int64  `json:"token_expire_at"`
}

// Expired reports whether the token is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return t.ExpireAt <= now.Unix()
}

// App is the stored entry for one application.
type App struct {
	ClientID     string  `json:"client_id"`
	ClientSecret string  `json:"client_secret"`
	RedirectURI  string  `json:"redirect_uri"`
	Tokens       []Token `json:"tokens"`
}

// Record is the merged view of an app entry and one of its tokens.
type Record struct {
	AppName      string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Token
}

// Store is the credential persistence contract shared by all backends.
type Store interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Closed() bool

	// Save upserts the app's client info and the token matching the record's
	// auth code and scopes.
	Save(ctx context.Context, rec Record) error
	// FetchByAccessToken returns nil when nothing matches.
	FetchByAccessToken(ctx context.Context, appName, accessToken string) (*Record, error)
	// FetchByAuthCode returns nil when nothing matches.
	FetchByAuthCode(ctx context.Context, appName, authCode string) (*Record, error)
	// DeleteToken removes one token; removing the last token removes the app.
	DeleteToken(ctx context.Context, appName, accessToken string) error
	// DeleteAllTokens removes the whole app entry.
	DeleteAllTokens(ctx context.Context, appName string) error
}

// StoreError describes a failed store operation.
type StoreError struct {
	Op      string // save, fetch, delete_token, delete_all_tokens, open, close
	Backend string
	AppName string
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s store: %s", e.Backend, e.Op)
	if e.AppName != "" {
		msg += fmt.Sprintf(" %q", e.AppName)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func newStoreError(backend, op, appName, message string, cause error) *StoreError {
	return &StoreError{Op: op, Backend: backend, AppName: appName, Message: message, Cause: cause}
}

// normalizeScopes makes "a+b", "b a" and "a,b" compare equal.
func normalizeScopes(raw string) string {
	return enums.ParseScopes(raw).String()
}
