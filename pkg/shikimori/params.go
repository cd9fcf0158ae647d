package shikimori

import (
	"net/url"
	"strconv"

	"github.com/bobmcallan/shiki/pkg/enums"
)

// Upper bounds of numeric query parameters.
const (
	MaxPage        = 100000
	MaxLimit       = 50
	MaxFilterScore = 9  // minimal score of catalogue filters
	MaxRateScore   = 10 // score a user gives a title
)

// query builds query parameters, skipping zero values.
type query struct {
	url.Values
}

func newQuery() query {
	return query{url.Values{}}
}

func (q query) str(key, v string) query {
	if v != "" {
		q.Set(key, v)
	}
	return q
}

func (q query) int(key string, v int) query {
	if v != 0 {
		q.Set(key, strconv.Itoa(v))
	}
	return q
}

// clamped sets v limited to [1, upper].
func (q query) clamped(key string, v, upper int) query {
	if v == 0 {
		return q
	}
	return q.int(key, clamp(v, upper))
}

func (q query) flag(key string, v *bool) query {
	if v == nil {
		return q
	}
	if *v {
		q.Set(key, "1")
	} else {
		q.Set(key, "0")
	}
	return q
}

func (q query) ids(key string, ids []int) query {
	return q.str(key, joinIDs(ids))
}

func joinIDs(ids []int) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return enums.Join(s...)
}

func clamp(v, upper int) int {
	if v < 1 {
		return 1
	}
	if v > upper {
		return upper
	}
	return v
}

// values returns nil for an empty query so no "?" is appended.
func (q query) values() url.Values {
	if len(q.Values) == 0 {
		return nil
	}
	return q.Values
}

// enumList joins enumeration values; exclusions go through enums.Not.
func enumList[T ~string](q query, key string, vals []T) query {
	return q.str(key, enums.Join(vals...))
}

// Page selects a page of a listing.
type Page struct {
	Page  int
	Limit int
}

func (p Page) apply(q query, maxLimit int) query {
	return q.clamped("page", p.Page, MaxPage).clamped("limit", p.Limit, maxLimit)
}

// Bool is a helper for optional boolean filters.
func Bool(v bool) *bool { return &v }

// rooted wraps a body under its resource key, e.g. {"user_rate": {...}}.
func rooted(root string, v any) map[string]any {
	return map[string]any{root: v}
}
