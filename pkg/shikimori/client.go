// Package shikimori is a typed client for the Shikimori REST API.
//
// A Client owns one HTTP session bound to one OAuth application. It keeps
// the token pair fresh, persists it through a store.Store, paces every call
// through a shared rate limiter and retries once when the server rejects an
// expired bearer token. Resource services (Animes, Users, UserRates, ...)
// are thin wrappers over Request.
package shikimori

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bobmcallan/shiki/internal/ratelimit"
	"github.com/bobmcallan/shiki/pkg/common"
	"github.com/bobmcallan/shiki/pkg/endpoints"
	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/store"
)

const DefaultTimeout = 30 * time.Second

// Client is a Shikimori API session. Create it with NewClient or
// NewRestrictedClient, then Open it before use.
type Client struct {
	cfg        Config
	restricted bool

	endpoints      *endpoints.Endpoints
	store          store.Store
	autoCloseStore bool
	logger         *common.Logger
	limiter        *ratelimit.Limiter
	transport      http.RoundTripper
	timeout        time.Duration
	strict         bool
	retry          *retryPolicy
	now            func() time.Time

	sessMu sync.RWMutex
	http   *http.Client // nil while closed

	tokMu sync.RWMutex
	token session

	refreshes singleflight.Group

	Animes     *AnimesService
	Mangas     *MangasService
	Ranobes    *RanobesService
	Users      *UsersService
	UserRates  *UserRatesService
	Topics     *TopicsService
	Clubs      *ClubsService
	Comments   *CommentsService
	Messages   *MessagesService
	Catalog    *CatalogService
	Favorites  *FavoritesService
	Friends    *FriendsService
	UserImages *UserImagesService
}

// session is the mutable token state of an open client.
type session struct {
	accessToken  string
	refreshToken string
	expireAt     int64
	scopes       enums.Scopes
}

// Option configures the client
type Option func(*Client)

// WithStore sets the credential store. The default is an in-memory store.
func WithStore(s store.Store) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithAutoCloseStore closes the credential store when the client closes.
func WithAutoCloseStore() Option {
	return func(c *Client) {
		c.autoCloseStore = true
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(c *Client) {
		c.logger = logger.WithComponent("shikimori")
	}
}

// WithBaseURL points the client at another root, e.g. an httptest server.
func WithBaseURL(root string) Option {
	return func(c *Client) {
		c.endpoints = endpoints.New(root)
	}
}

// WithRateLimit sets the request budgets. Zero disables a budget.
func WithRateLimit(perSecond, perMinute int) Option {
	return func(c *Client) {
		c.limiter = ratelimit.New(ratelimit.Config{PerSecond: perSecond, PerMinute: perMinute})
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTransport sets the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithStrictErrors makes resource services return API and decode errors
// instead of their fallback values.
func WithStrictErrors() Option {
	return func(c *Client) {
		c.strict = true
	}
}

// NewClient validates cfg and returns a closed client. A cfg carrying only
// AppName yields a restricted client limited to public endpoints.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	c := &Client{
		store:     store.NewMemoryStore(),
		logger:    common.NewSilentLogger(),
		limiter:   ratelimit.New(ratelimit.DefaultConfig()),
		transport: http.DefaultTransport,
		timeout:   DefaultTimeout,
		now:       time.Now,
		endpoints: endpoints.ForDomain(cfg.APIDomain),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := cfg.validate(c.endpoints); err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.restricted = cfg.Restricted()

	c.Animes = &AnimesService{c}
	c.Mangas = &MangasService{c}
	c.Ranobes = &RanobesService{c}
	c.Users = &UsersService{c}
	c.UserRates = &UserRatesService{c}
	c.Topics = &TopicsService{c}
	c.Clubs = &ClubsService{c}
	c.Comments = &CommentsService{c}
	c.Messages = &MessagesService{c}
	c.Catalog = &CatalogService{c}
	c.Favorites = &FavoritesService{c}
	c.Friends = &FriendsService{c}
	c.UserImages = &UserImagesService{c}
	return c, nil
}

// NewRestrictedClient returns a client that can only call public endpoints.
func NewRestrictedClient(appName string, opts ...Option) (*Client, error) {
	return NewClient(Config{AppName: appName}, opts...)
}

// Endpoints returns the URL builder the client uses.
func (c *Client) Endpoints() *endpoints.Endpoints { return c.endpoints }

// Store returns the credential store.
func (c *Client) Store() store.Store { return c.store }

// Restricted reports whether the client runs without OAuth credentials.
func (c *Client) Restricted() bool { return c.restricted }

// Closed reports whether the session is closed.
func (c *Client) Closed() bool {
	c.sessMu.RLock()
	defer c.sessMu.RUnlock()
	return c.http == nil
}

// Scopes returns the scopes granted to the current token.
func (c *Client) Scopes() enums.Scopes {
	c.tokMu.RLock()
	defer c.tokMu.RUnlock()
	out := make(enums.Scopes, len(c.token.scopes))
	for s := range c.token.scopes {
		out[s] = struct{}{}
	}
	return out
}

// AccessToken returns the current bearer token.
func (c *Client) AccessToken() string {
	c.tokMu.RLock()
	defer c.tokMu.RUnlock()
	return c.token.accessToken
}

// AuthorizationURL is the page where a human authorizes the application.
func (c *Client) AuthorizationURL() (string, error) {
	if c.restricted {
		return "", ErrRestricted
	}
	return c.endpoints.AuthorizationURL(c.cfg.ClientID, c.cfg.RedirectURI, enums.ParseScopes(c.cfg.Scopes).List()), nil
}

func (c *Client) userAgent() string {
	return c.cfg.AppName + " " + common.UserAgentSuffix()
}

// Open starts the session. Unless restricted, it adopts a cached token
// pair for the configured auth code or redeems the code, then refreshes the
// pair if it has expired.
func (c *Client) Open(ctx context.Context) error {
	c.sessMu.Lock()
	if c.http != nil {
		c.sessMu.Unlock()
		return ErrAlreadyOpen
	}
	c.http = &http.Client{
		Timeout: c.timeout,
		Transport: &limitedTransport{
			base:      c.transport,
			limiter:   c.limiter,
			userAgent: c.userAgent(),
		},
	}
	c.sessMu.Unlock()

	if c.store.Closed() {
		if err := c.store.Open(ctx); err != nil {
			c.shutdown(ctx)
			return err
		}
	}

	if c.restricted {
		c.logger.Debug().Str("app", c.cfg.AppName).Msg("Session opened in restricted mode")
		return nil
	}
	if err := c.authenticate(ctx); err != nil {
		c.shutdown(ctx)
		return err
	}
	c.logger.Debug().Str("app", c.cfg.AppName).Msg("Session opened")
	return nil
}

// Close ends the session. Requests issued afterwards return nil results.
func (c *Client) Close(ctx context.Context) error {
	if c.Closed() {
		return nil
	}
	return c.shutdown(ctx)
}

func (c *Client) shutdown(ctx context.Context) error {
	c.sessMu.Lock()
	if c.http != nil {
		c.http.CloseIdleConnections()
		c.http = nil
	}
	c.sessMu.Unlock()

	c.tokMu.Lock()
	c.token = session{}
	c.tokMu.Unlock()

	if c.autoCloseStore && !c.store.Closed() {
		return c.store.Close(ctx)
	}
	return nil
}

// WithSession opens c, runs fn and closes c again.
func (c *Client) WithSession(ctx context.Context, fn func(ctx context.Context, c *Client) error) error {
	if err := c.Open(ctx); err != nil {
		return err
	}
	err := fn(ctx, c)
	if cerr := c.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

// Logout signs the current token out on the server, forgets it in the
// store and closes the session. The session is closed even when the store
// fails; a token the store never held is not an error.
func (c *Client) Logout(ctx context.Context) error {
	if c.restricted {
		return ErrRestricted
	}
	access := c.AccessToken()
	if _, err := c.Request(ctx, Request{Method: http.MethodGet, URL: c.endpoints.SignOut()}); err != nil {
		c.logger.Warn().Err(err).Msg("Sign out request failed")
	}
	var storeErr error
	if access != "" {
		if err := c.store.DeleteToken(ctx, c.cfg.AppName, access); err != nil && !errors.Is(err, store.ErrNotFound) {
			storeErr = err
		}
	}
	if err := c.Close(ctx); err != nil {
		return err
	}
	return storeErr
}

func (c *Client) session() *http.Client {
	c.sessMu.RLock()
	defer c.sessMu.RUnlock()
	return c.http
}
