// SPDX-License-Identifier: MIT
// Package network: sentinel error set shared by every estimator.
// The estimators (successor, exact, montecarlo, meanfield) return these
// sentinels, possibly wrapped with context via fmt.Errorf("%w: ...").
// Callers and tests MUST match them with errors.Is.

package network

import (
	"errors"
	"fmt"
)

var (
	// ErrInconsistentLogic is returned when a node's prime implicants do not
	// force exactly one value for some evaluated state: either none of them
	// matches, or a positive and a negative implicant match together.
	ErrInconsistentLogic = errors.New("network: inconsistent logic")

	// ErrInvalidParameter signals a non-positive step/trial count, an
	// unrecognized discipline or mode, or a malformed argument.
	ErrInvalidParameter = errors.New("network: invalid parameter")

	// ErrUnknownNode indicates that a node identifier is not part of the network.
	ErrUnknownNode = errors.New("network: unknown node")

	// ErrEmptyNetwork indicates that a network without nodes was requested.
	ErrEmptyNetwork = errors.New("network: network has no nodes")
)

// LogicError describes a node whose rule is ill-formed for one state.
// It matches ErrInconsistentLogic under errors.Is.
type LogicError struct {
	Node     string // offending node
	State    State  // state the node was evaluated on
	Positive bool   // some positive implicant matched
	Negative bool   // some negative implicant matched
}

// Error implements the error interface.
func (e *LogicError) Error() string {
	what := "no implicant matches"
	if e.Positive && e.Negative {
		what = "positive and negative implicants both match"
	}
	return fmt.Sprintf("%s: node %q in state %s: %s", ErrInconsistentLogic, e.Node, e.State, what)
}

// Unwrap exposes ErrInconsistentLogic to errors.Is.
func (e *LogicError) Unwrap() error { return ErrInconsistentLogic }
