package shikimori

import (
	"net/http"

	"github.com/bobmcallan/shiki/internal/ratelimit"
)

// limitedTransport applies the client's rate limit and User-Agent to every
// outgoing call, token exchanges included.
type limitedTransport struct {
	base      http.RoundTripper
	limiter   *ratelimit.Limiter
	userAgent string
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}
