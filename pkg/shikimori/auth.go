package shikimori

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"

	"github.com/bobmcallan/shiki/pkg/enums"
	"github.com/bobmcallan/shiki/pkg/store"
)

const (
	grantAuthorizationCode = "authorization_code"
	grantRefreshToken      = "refresh_token"
)

func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURI,
		Scopes:       enums.ParseScopes(c.cfg.Scopes).List(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.endpoints.OAuthAuthorize(),
			TokenURL:  c.endpoints.OAuthToken(),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// oauthContext routes token exchanges through the session's limited client.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	if hc := c.session(); hc != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, hc)
	}
	return ctx
}

// authenticate establishes the token pair for an opening session.
func (c *Client) authenticate(ctx context.Context) error {
	rec, err := c.cachedRecord(ctx)
	if err != nil {
		return err
	}

	switch {
	case rec != nil:
		c.logger.Debug().Str("app", c.cfg.AppName).Msg("Using cached token pair")
		scopes := rec.Scopes
		if scopes == "" {
			scopes = c.cfg.Scopes
		}
		c.setToken(rec.AccessToken, rec.RefreshToken, rec.ExpireAt, scopes)
	case c.cfg.AccessToken != "":
		c.logger.Debug().Str("app", c.cfg.AppName).Msg("Adopting supplied token pair")
		c.setToken(c.cfg.AccessToken, c.cfg.RefreshToken, c.cfg.TokenExpireAt, c.cfg.Scopes)
		c.persist(ctx)
	default:
		if err := c.exchangeCode(ctx); err != nil {
			return err
		}
	}

	if access, expired := c.expiredToken(); expired {
		c.logger.Debug().Msg("Token has expired, refreshing")
		return c.refresh(ctx, access)
	}
	return nil
}

// cachedRecord looks for a stored pair, by access token first.
func (c *Client) cachedRecord(ctx context.Context) (*store.Record, error) {
	if c.cfg.AccessToken != "" {
		rec, err := c.store.FetchByAccessToken(ctx, c.cfg.AppName, c.cfg.AccessToken)
		if err != nil || rec != nil {
			return rec, err
		}
	}
	if c.cfg.AuthCode != "" {
		return c.store.FetchByAuthCode(ctx, c.cfg.AppName, c.cfg.AuthCode)
	}
	return nil, nil
}

func (c *Client) exchangeCode(ctx context.Context) error {
	c.logger.Info().Str("app", c.cfg.AppName).Msg("Getting new access token")
	tok, err := c.oauthConfig().Exchange(c.oauthContext(ctx), c.cfg.AuthCode)
	if err != nil {
		return tokenError(grantAuthorizationCode, err)
	}
	c.adopt(tok)
	c.persist(ctx)
	return nil
}

// refresh exchanges the refresh token for a new pair. Concurrent callers
// share one exchange; a caller whose stale token was already replaced
// returns without exchanging again. The exchange is detached from the
// caller that started it, so cancelling one caller only stops its wait.
func (c *Client) refresh(ctx context.Context, stale string) error {
	flight := c.refreshes.DoChan(grantRefreshToken, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		c.tokMu.RLock()
		current := c.token
		c.tokMu.RUnlock()

		if stale != "" && current.accessToken != stale {
			return nil, nil
		}
		if current.refreshToken == "" {
			return nil, &TokenError{GrantType: grantRefreshToken, Err: errNoRefreshToken}
		}

		c.logger.Info().Str("app", c.cfg.AppName).Msg("Refreshing access token")
		src := c.oauthConfig().TokenSource(c.oauthContext(ctx), &oauth2.Token{
			RefreshToken: current.refreshToken,
			Expiry:       time.Unix(1, 0),
		})
		tok, err := src.Token()
		if err != nil {
			return nil, tokenError(grantRefreshToken, err)
		}
		c.adopt(tok)
		c.persist(ctx)
		return nil, nil
	})

	select {
	case res := <-flight:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// adopt replaces the pair with a freshly issued token.
func (c *Client) adopt(tok *oauth2.Token) {
	scopes := c.cfg.Scopes
	if granted, ok := tok.Extra("scope").(string); ok && granted != "" {
		scopes = granted
	}
	expireAt := c.now().Add(TokenTTL).Unix()
	c.setToken(tok.AccessToken, tok.RefreshToken, expireAt, scopes)
}

func (c *Client) setToken(access, refresh string, expireAt int64, scopes string) {
	c.tokMu.Lock()
	defer c.tokMu.Unlock()
	c.token = session{
		accessToken:  access,
		refreshToken: refresh,
		expireAt:     expireAt,
		scopes:       enums.ParseScopes(scopes),
	}
}

// expiredToken returns the current access token and whether it has
// expired, read together so a concurrent refresh is not mistaken for stale.
func (c *Client) expiredToken() (string, bool) {
	c.tokMu.RLock()
	defer c.tokMu.RUnlock()
	return c.token.accessToken, c.token.expireAt <= c.now().Unix()
}

// persist saves the current pair. A failed save leaves the session usable.
func (c *Client) persist(ctx context.Context) {
	c.tokMu.RLock()
	tok := c.token
	c.tokMu.RUnlock()

	rec := store.Record{
		AppName:      c.cfg.AppName,
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURI:  c.cfg.RedirectURI,
		Token: store.Token{
			AuthCode:     c.cfg.AuthCode,
			Scopes:       tok.scopes.String(),
			AccessToken:  tok.accessToken,
			RefreshToken: tok.refreshToken,
			ExpireAt:     tok.expireAt,
		},
	}
	if err := c.store.Save(ctx, rec); err != nil {
		c.logger.Error().Err(err).Str("app", c.cfg.AppName).Msg("Failed to persist token pair")
	}
}

func tokenError(grant string, err error) error {
	tokErr := &TokenError{GrantType: grant, Err: err}
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		tokErr.Payload = re.Body
	}
	return tokErr
}
