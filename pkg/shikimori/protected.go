package shikimori

import (
	"context"

	"github.com/bobmcallan/shiki/pkg/enums"
)

// Authorize is the gate in front of every protected operation. It returns
// false, without touching the network, when the client is restricted or the
// token lacks scope. Otherwise it refreshes an expired token first.
func (c *Client) Authorize(ctx context.Context, scope enums.Scope) (bool, error) {
	if c.restricted {
		c.logger.Debug().Msg("Protected method unavailable in restricted mode")
		return false, nil
	}
	c.tokMu.RLock()
	granted := c.token.scopes.Has(scope)
	c.tokMu.RUnlock()
	if !granted {
		c.logger.Debug().Str("scope", scope.String()).Msg("Protected method unavailable without scope")
		return false, nil
	}
	if access, expired := c.expiredToken(); expired {
		c.logger.Debug().Msg("Token has expired, refreshing")
		if err := c.refresh(ctx, access); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Protected runs fn behind Authorize, returning fallback when the gate
// refuses. An empty scope only requires an authenticated client.
func Protected[T any](ctx context.Context, c *Client, scope enums.Scope, fallback T, fn func(ctx context.Context) (T, error)) (T, error) {
	ok, err := c.Authorize(ctx, scope)
	if err != nil {
		return fallback, err
	}
	if !ok {
		return fallback, nil
	}
	return fn(ctx)
}
