package shikimori

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/shiki/pkg/store"
)

type tokenPair struct {
	Access  string
	Refresh string
	Scope   string
}

type apiCall struct {
	Method string
	Path   string
	Auth   string
	Agent  string
	At     time.Time
}

// fakeAPI serves both the OAuth token endpoint and the REST API.
type fakeAPI struct {
	srv *httptest.Server
	mux *http.ServeMux

	mu         sync.Mutex
	tokens     []tokenPair
	tokenCalls []url.Values
	calls      []apiCall

	// tokenHold, when set, parks token requests until it is closed.
	tokenHold    chan struct{}
	tokenArrived chan struct{}
}

func newFakeAPI(t *testing.T, tokens ...tokenPair) *fakeAPI {
	t.Helper()
	f := &fakeAPI{mux: http.NewServeMux(), tokens: tokens}
	f.mux.HandleFunc("POST /oauth/token", f.serveToken)
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			f.mu.Lock()
			f.calls = append(f.calls, apiCall{
				Method: r.Method,
				Path:   r.URL.Path,
				Auth:   r.Header.Get("Authorization"),
				Agent:  r.Header.Get("User-Agent"),
				At:     time.Now(),
			})
			f.mu.Unlock()
		}
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) serveToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.tokenCalls = append(f.tokenCalls, r.PostForm)
	var next *tokenPair
	if len(f.tokens) > 0 {
		next = &f.tokens[0]
		f.tokens = f.tokens[1:]
	}
	hold, arrived := f.tokenHold, f.tokenArrived
	f.mu.Unlock()

	if hold != nil {
		select {
		case arrived <- struct{}{}:
		default:
		}
		<-hold
	}

	w.Header().Set("Content-Type", "application/json")
	if next == nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"The provided authorization grant is invalid"}`))
		return
	}
	json.NewEncoder(w).Encode(map[string]any{
		"access_token":  next.Access,
		"refresh_token": next.Refresh,
		"token_type":    "Bearer",
		"expires_in":    86400,
		"scope":         next.Scope,
		"created_at":    time.Now().Unix(),
	})
}

// handle registers a handler for pattern, e.g. "GET /api/users/whoami".
func (f *fakeAPI) handle(pattern string, h http.HandlerFunc) {
	f.mux.HandleFunc(pattern, h)
}

// reply registers a handler answering pattern with a JSON body.
func (f *fakeAPI) reply(pattern, body string) {
	f.handle(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

// holdTokens parks later token requests. The returned channel receives
// once a request is parked; release lets every parked request through.
func (f *fakeAPI) holdTokens() (arrived <-chan struct{}, release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenHold = make(chan struct{})
	f.tokenArrived = make(chan struct{}, 1)
	hold := f.tokenHold
	var once sync.Once
	return f.tokenArrived, func() { once.Do(func() { close(hold) }) }
}

func (f *fakeAPI) tokenRequests() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.tokenCalls...)
}

func (f *fakeAPI) apiCalls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func testConfig() Config {
	return Config{
		AppName:      "TestApp",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       "user_rates comments",
		AuthCode:     "abc123",
	}
}

// newTestClient builds a client against f with rate limiting disabled.
func newTestClient(t *testing.T, f *fakeAPI, cfg Config, opts ...Option) *Client {
	t.Helper()
	base := []Option{WithBaseURL(f.srv.URL), WithRateLimit(0, 0)}
	c, err := NewClient(cfg, append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func openTestClient(t *testing.T, f *fakeAPI, cfg Config, opts ...Option) *Client {
	t.Helper()
	c := newTestClient(t, f, cfg, opts...)
	require.NoError(t, c.Open(context.Background()))
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c
}

func openMemoryStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	require.NoError(t, s.Open(context.Background()))
	return s
}

const whoamiBody = `{"id":1,"nickname":"tester","avatar":"a.png","image":{}}`
