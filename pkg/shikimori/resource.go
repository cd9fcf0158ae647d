package shikimori

import (
	"context"
	"errors"

	"github.com/bobmcallan/shiki/pkg/validate"
)

// trace logs the logical endpoint a service method maps to.
func (c *Client) trace(endpoint string) {
	c.logger.Debug().Str("endpoint", endpoint).Msg("Executing method")
}

// settle swallows API and decoding failures into fallback unless the client
// is strict. Transport and token errors always propagate.
func settle[T any](c *Client, endpoint string, fallback, v T, err error) (T, error) {
	if err == nil {
		return v, nil
	}
	if c.strict {
		return fallback, err
	}
	var apiErr *APIError
	var decErr *validate.Error
	if errors.As(err, &apiErr) || errors.As(err, &decErr) {
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Request failed, returning fallback")
		return fallback, nil
	}
	return fallback, err
}

func getOne[T any](ctx context.Context, c *Client, endpoint string, req Request) (*T, error) {
	c.trace(endpoint)
	res, err := c.Request(ctx, req)
	if err != nil {
		return settle[*T](c, endpoint, nil, nil, err)
	}
	v, err := validate.One[T](res.Raw())
	return settle(c, endpoint, nil, v, err)
}

func getList[T any](ctx context.Context, c *Client, endpoint string, req Request) ([]T, error) {
	c.trace(endpoint)
	res, err := c.Request(ctx, req)
	if err != nil {
		return settle(c, endpoint, []T{}, nil, err)
	}
	v, err := validate.List[T](res.Raw())
	return settle(c, endpoint, []T{}, v, err)
}

// act performs a call whose only outcome is success or failure.
func act(ctx context.Context, c *Client, endpoint string, req Request) (bool, error) {
	c.trace(endpoint)
	res, err := c.Request(ctx, req)
	return settle(c, endpoint, false, res.OK(), err)
}
