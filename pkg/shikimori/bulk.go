package shikimori

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Call is one pending request for Gather.
type Call[T any] func(ctx context.Context) (T, error)

// Outcome is the result of one call.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Gather runs calls concurrently and returns their outcomes in call order.
// A failing call does not cancel the others. All calls share the client's
// rate limit, so they are released as budget frees up.
func Gather[T any](ctx context.Context, calls ...Call[T]) []Outcome[T] {
	return GatherLimit(ctx, -1, calls...)
}

// GatherLimit is Gather with at most limit calls in flight; zero or a
// negative limit means no limit.
func GatherLimit[T any](ctx context.Context, limit int, calls ...Call[T]) []Outcome[T] {
	if limit <= 0 {
		limit = -1
	}
	out := make([]Outcome[T], len(calls))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, call := range calls {
		g.Go(func() error {
			v, err := call(ctx)
			out[i] = Outcome[T]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Values returns the values of successful outcomes, in order.
func Values[T any](outcomes []Outcome[T]) []T {
	vals := make([]T, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			vals = append(vals, o.Value)
		}
	}
	return vals
}
