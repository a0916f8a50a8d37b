package exact

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/boolprob/network"
)

// ErrStateExplosion is returned when a generation would hold more entries
// than the configured MaxEntries.
var ErrStateExplosion = errors.New("exact: generation exceeds entry limit")

// DefaultMaxEntries bounds the size of one generation (4,194,304 entries).
const DefaultMaxEntries = 1 << 22

// Option configures Enumerate via functional arguments.
// An invalid Option is recorded and surfaced as network.ErrInvalidParameter
// when Enumerate runs.
type Option func(*Options)

// Options holds the parameters of one enumeration.
type Options struct {
	// Ctx allows cancellation between generations and chunks.
	Ctx context.Context

	// Workers is the number of goroutines expanding one generation.
	Workers int

	// MaxEntries caps the size of any generation.
	MaxEntries int

	// Merge collapses equal states of a generation into one weighted entry.
	Merge bool

	// PathCounting gives every successor the full weight of its parent, so
	// a marginal is the fraction of trajectories rather than a probability
	// under uniform branching.
	PathCounting bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with:
//   - context.Background()
//   - one worker
//   - MaxEntries = DefaultMaxEntries
//   - full expansion without merging.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		Workers:    1,
		MaxEntries: DefaultMaxEntries,
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

// WithWorkers expands each generation with k goroutines.
// k < 1 is invalid.
func WithWorkers(k int) Option {
	return func(o *Options) {
		if k < 1 {
			o.err = fmt.Errorf("%w: exact: workers must be >= 1 (%d)", network.ErrInvalidParameter, k)
			return
		}
		o.Workers = k
	}
}

// WithMaxEntries caps the number of entries of any generation.
// m < 1 is invalid.
func WithMaxEntries(m int) Option {
	return func(o *Options) {
		if m < 1 {
			o.err = fmt.Errorf("%w: exact: max entries must be >= 1 (%d)", network.ErrInvalidParameter, m)
			return
		}
		o.MaxEntries = m
	}
}

// WithMergeDuplicates collapses equal states of every generation into one
// entry carrying the summed weight. Marginals are unchanged; each
// generation then holds at most 2^n entries.
func WithMergeDuplicates() Option {
	return func(o *Options) {
		o.Merge = true
	}
}

// WithPathCounting counts every trajectory once instead of splitting the
// weight of a state among its successors. Under asynchronous update states
// with more successors then count more; synchronous results are unchanged.
// Steady states still carry themselves forward.
func WithPathCounting() Option {
	return func(o *Options) {
		o.PathCounting = true
	}
}

// entry is one member of a generation: a state and its probability mass.
type entry struct {
	state  network.State
	weight float64
}
