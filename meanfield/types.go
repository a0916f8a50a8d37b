// SPDX-License-Identifier: MIT

package meanfield

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/boolprob/network"
)

// ErrTableTooLarge is returned when the positive table of a node would hold
// more rows than Options.MaxTableRows.
var ErrTableTooLarge = errors.New("meanfield: positive table exceeds row limit")

// Mode selects the recurrence applied at every step.
// The zero value is invalid.
type Mode int

const (
	// Synchronous sets p[n][t] to the probability that the state at t-1 lies
	// in the positive subspace of n.
	Synchronous Mode = iota + 1
	// AsynchronousBlend assumes one of the N nodes, chosen uniformly, updates
	// per step: p[n][t] = (raw + (N-1)·p[n][t-1]) / N.
	AsynchronousBlend
)

// String returns "synchronous", "asynchronous-blend" or "Mode(n)".
func (m Mode) String() string {
	switch m {
	case Synchronous:
		return "synchronous"
	case AsynchronousBlend:
		return "asynchronous-blend"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a recognized mode.
func (m Mode) Valid() bool { return m == Synchronous || m == AsynchronousBlend }

// ParseMode accepts "s", "sync", "synchronous", "a", "async",
// "asynchronous" and "asynchronous-blend", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sync", "synchronous":
		return Synchronous, nil
	case "a", "async", "asynchronous", "asynchronous-blend", "blend":
		return AsynchronousBlend, nil
	}
	return 0, fmt.Errorf("%w: unknown mean-field mode %q", network.ErrInvalidParameter, s)
}

// DefaultMaxTableRows bounds the rows of one node table (1,048,576).
const DefaultMaxTableRows = 1 << 20

// Options configures Approximate.
type Options struct {
	// Workers computes the nodes of one step on this many goroutines.
	// Values < 1 are rejected.
	Workers int

	// MaxTableRows caps the rows of any node table.
	MaxTableRows int

	// Fixed pins nodes to a constant probability at every step, including
	// step 0. Values must lie in [0,1].
	Fixed map[string]float64
}

// DefaultOptions returns Options with one worker, DefaultMaxTableRows and no
// fixed nodes.
func DefaultOptions() Options {
	return Options{
		Workers:      1,
		MaxTableRows: DefaultMaxTableRows,
	}
}

// Table lists every full assignment under which Node evaluates to 1: the
// union of the subspaces of its positive prime implicants.
type Table struct {
	Node string
	Rows []network.State
}
