package montecarlo

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/boolprob/network"
)

// Option configures Simulate via functional arguments.
// An invalid Option is recorded and surfaced as network.ErrInvalidParameter
// when Simulate runs.
type Option func(*Options)

// Options holds the parameters of one Monte Carlo run.
type Options struct {
	// Ctx allows cancellation between trials.
	Ctx context.Context

	// Seed feeds the base RNG when Rand is nil. 0 selects a fixed default.
	Seed int64

	// Rand, if non-nil, is the base stream worker streams are derived from.
	// Simulate draws from it only on the calling goroutine.
	Rand *rand.Rand

	// Workers is the number of goroutines running trials.
	Workers int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with context.Background(), seed 0 (the
// fixed default stream) and a single worker.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Workers: 1,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSeed selects the base seed; 0 means the fixed default.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithRand supplies the base stream directly; it overrides WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		if r != nil {
			o.Rand = r
		}
	}
}

// WithWorkers runs trials on k goroutines, each with its own RNG stream.
// k < 1 is invalid. The estimate is reproducible for a fixed (seed, k).
func WithWorkers(k int) Option {
	return func(o *Options) {
		if k < 1 {
			o.err = fmt.Errorf("%w: montecarlo: workers must be >= 1 (%d)", network.ErrInvalidParameter, k)
			return
		}
		o.Workers = k
	}
}
