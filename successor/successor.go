package successor

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/boolprob/network"
)

// Discipline selects how nodes update in one logical step.
// The zero value is invalid.
type Discipline int

const (
	// Synchronous updates every node at once from the same input state.
	Synchronous Discipline = iota + 1
	// Asynchronous updates exactly one node whose value would change.
	Asynchronous
)

// String returns "synchronous", "asynchronous" or "Discipline(n)".
func (d Discipline) String() string {
	switch d {
	case Synchronous:
		return "synchronous"
	case Asynchronous:
		return "asynchronous"
	default:
		return fmt.Sprintf("Discipline(%d)", int(d))
	}
}

// Valid reports whether d is one of the recognized disciplines.
func (d Discipline) Valid() bool { return d == Synchronous || d == Asynchronous }

// ParseDiscipline accepts "sync", "synchronous", "s", "async", "asynchronous"
// and "a", case-insensitively.
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "sync", "synchronous":
		return Synchronous, nil
	case "a", "async", "asynchronous":
		return Asynchronous, nil
	}
	return 0, fmt.Errorf("%w: unknown discipline %q", network.ErrInvalidParameter, s)
}

// Func generates the successors of a state under one fixed discipline.
type Func func(net *network.Network, s network.State) ([]network.State, error)

// For resolves d to its generator once, so hot loops skip the dispatch.
func For(d Discipline) (Func, error) {
	switch d {
	case Synchronous:
		return func(net *network.Network, s network.State) ([]network.State, error) {
			next, err := net.Next(s)
			if err != nil {
				return nil, err
			}
			return []network.State{next}, nil
		}, nil
	case Asynchronous:
		return Async, nil
	default:
		return nil, fmt.Errorf("%w: unknown discipline %v", network.ErrInvalidParameter, d)
	}
}

// Successors returns the states reachable from s in one step under d.
//
// Synchronous yields exactly one state. Asynchronous yields one state per
// node whose own rule would flip it, in node order, and an empty slice when
// s is steady. Errors: ErrInvalidParameter for an unknown discipline or a
// state of the wrong length; ErrInconsistentLogic from evaluation.
func Successors(net *network.Network, s network.State, d Discipline) ([]network.State, error) {
	f, err := For(d)
	if err != nil {
		return nil, err
	}
	return f(net, s)
}

// Sync returns the single synchronous successor of s.
func Sync(net *network.Network, s network.State) (network.State, error) {
	return net.Next(s)
}

// Async returns the asynchronous successors of s; nil when s is steady.
func Async(net *network.Network, s network.State) ([]network.State, error) {
	flip, err := net.Flippable(s)
	if err != nil {
		return nil, err
	}
	if len(flip) == 0 {
		return nil, nil
	}
	out := make([]network.State, len(flip))
	for k, i := range flip {
		out[k] = s.With(i, !s.Get(i))
	}
	return out, nil
}

// IsSteady reports whether no node of s would change under its own rule.
func IsSteady(net *network.Network, s network.State) (bool, error) {
	flip, err := net.Flippable(s)
	if err != nil {
		return false, err
	}
	return len(flip) == 0, nil
}
