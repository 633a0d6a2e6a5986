// Package fanout runs independent provider attempts concurrently and waits for all of them.
package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/soramod/soramod/log"
	"golang.org/x/sync/errgroup"
)

// Attempt is one unit of work, usually a request to a single provider.
type Attempt[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Outcome is the settled result of an Attempt.
type Outcome[T any] struct {
	Name  string
	Value T
	Err   error
}

type settings struct {
	limit   int
	timeout time.Duration
}

// Option configures Settle.
type Option func(*settings)

// WithLimit bounds how many attempts run at once. Values below 1 mean unbounded.
func WithLimit(n int) Option {
	return func(s *settings) {
		s.limit = n
	}
}

// WithTimeout bounds each attempt individually. Zero means no extra bound.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		s.timeout = d
	}
}

// Settle runs every attempt and returns their outcomes in input order.
// A failing or panicking attempt never cancels its siblings.
func Settle[T any](ctx context.Context, attempts []Attempt[T], options ...Option) []Outcome[T] {
	var s settings
	for _, option := range options {
		option(&s)
	}

	outcomes := make([]Outcome[T], len(attempts))

	var g errgroup.Group
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}

	for i, attempt := range attempts {
		g.Go(func() error {
			outcomes[i] = run(ctx, attempt, s.timeout)
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

func run[T any](ctx context.Context, attempt Attempt[T], timeout time.Duration) (outcome Outcome[T]) {
	outcome.Name = attempt.Name

	defer func() {
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("attempt %s panicked: %v", attempt.Name, r)
		}
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	outcome.Value, outcome.Err = attempt.Run(ctx)
	return outcome
}

// Values returns the successful values in input order and logs every failure.
func Values[T any](outcomes []Outcome[T]) []T {
	return lo.FilterMap(outcomes, func(o Outcome[T], _ int) (T, bool) {
		if o.Err != nil {
			log.WithField("attempt", o.Name).Warn(o.Err)
			return o.Value, false
		}
		return o.Value, true
	})
}
