// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"strings"
)

// State is an immutable full assignment of Boolean values to the nodes of a
// network, in node order. States compare with == and can be used as map keys.
//
// The zero State has length 0 and belongs to no network.
type State struct {
	bits string // one byte per node, 0 or 1
}

// NewState builds a State from bits; bits[i] is the value of node i.
func NewState(bits []bool) State {
	buf := make([]byte, len(bits))
	for i, b := range bits {
		if b {
			buf[i] = 1
		}
	}
	return State{bits: string(buf)}
}

// ParseState parses a string of '0' and '1' characters, as produced by
// State.String.
func ParseState(s string) (State, error) {
	buf := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			buf[i] = 1
		default:
			return State{}, fmt.Errorf("%w: state %q: character %q at %d is not 0 or 1",
				ErrInvalidParameter, s, s[i], i)
		}
	}
	return State{bits: string(buf)}, nil
}

// Len returns the number of coordinates.
func (s State) Len() int { return len(s.bits) }

// Get returns the value of coordinate i. It panics if i is out of range,
// like a slice index.
func (s State) Get(i int) bool { return s.bits[i] == 1 }

// With returns a copy of s with coordinate i set to v.
func (s State) With(i int, v bool) State {
	if s.Get(i) == v {
		return s
	}
	buf := []byte(s.bits)
	if v {
		buf[i] = 1
	} else {
		buf[i] = 0
	}
	return State{bits: string(buf)}
}

// Bits returns the coordinates as a fresh slice.
func (s State) Bits() []bool {
	out := make([]bool, len(s.bits))
	for i := range out {
		out[i] = s.bits[i] == 1
	}
	return out
}

// Ones counts the coordinates set to 1.
func (s State) Ones() int {
	n := 0
	for i := 0; i < len(s.bits); i++ {
		n += int(s.bits[i])
	}
	return n
}

// Differences counts the coordinates in which s and o differ.
// States of different length differ in every coordinate of the longer one
// that the shorter lacks.
func (s State) Differences(o State) int {
	short, long := s.bits, o.bits
	if len(short) > len(long) {
		short, long = long, short
	}
	d := len(long) - len(short)
	for i := 0; i < len(short); i++ {
		if short[i] != long[i] {
			d++
		}
	}
	return d
}

// String renders the state as '0'/'1' characters in node order.
func (s State) String() string {
	var b strings.Builder
	b.Grow(len(s.bits))
	for i := 0; i < len(s.bits); i++ {
		b.WriteByte('0' + s.bits[i])
	}
	return b.String()
}
