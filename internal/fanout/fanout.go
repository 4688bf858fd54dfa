// Package fanout runs one traversal level of work under an explicit
// concurrency policy.
//
// Each level of a tree walk states how many of its units may run at once:
//
//	regions, err := fanout.Map(ctx, fanout.Unbounded, regions, expandRegion)
//	dirs, err := fanout.Map(ctx, fanout.Sequential, dirs, readDir)
//
// Results come back in input order whatever the policy, and the first error
// cancels the remaining units.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Policy is the maximum number of units of one level running at once.
// Zero means no limit.
type Policy int

const (
	// Unbounded starts every unit at once.
	Unbounded Policy = 0

	// Sequential runs one unit at a time, in input order.
	Sequential Policy = 1
)

// Limit returns a policy allowing n concurrent units. n <= 0 is Unbounded.
func Limit(n int) Policy {
	if n <= 0 {
		return Unbounded
	}
	return Policy(n)
}

func (p Policy) String() string {
	switch {
	case p <= Unbounded:
		return "unbounded"
	case p == Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("limit(%d)", int(p))
	}
}

func (p Policy) limit() int {
	if p <= Unbounded {
		return -1
	}
	return int(p)
}

// Map calls fn for every item under policy p and returns the results in the
// order of items. The context passed to fn is cancelled as soon as one call
// fails; Map then returns that first error.
func Map[T, R any](ctx context.Context, p Policy, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.limit())

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
