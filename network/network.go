// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"slices"
	"sort"
)

// MaxEnumerableNodes bounds the networks whose full state space may be
// listed explicitly (AllStates, StateFromIndex).
const MaxEnumerableNodes = 30

// Assignment is a partial assignment: node name → value.
type Assignment map[string]bool

// Primes is the name-keyed activation logic of one node.
// Every Positive assignment forces the node to 1, every Negative one to 0.
type Primes struct {
	Negative []Assignment
	Positive []Assignment
}

// Literal fixes node Node (an index into the network) to Value.
type Literal struct {
	Node  int
	Value bool
}

// Implicant is a compiled partial assignment, sorted by Literal.Node.
type Implicant []Literal

// Matches reports whether every literal of p agrees with s.
func (p Implicant) Matches(s State) bool {
	for _, l := range p {
		if s.Get(l.Node) != l.Value {
			return false
		}
	}
	return true
}

// rule holds the compiled implicants of one node.
type rule struct {
	negative []Implicant
	positive []Implicant
}

// Network is the immutable update logic of a Boolean network.
// Nodes are ordered by name; that order is the coordinate order of State.
// A Network is safe for concurrent use by multiple goroutines.
type Network struct {
	names []string
	index map[string]int
	rules []rule
}

// New compiles primes into a Network.
//
// Errors:
//   - ErrEmptyNetwork if primes is empty.
//   - ErrInvalidParameter for an empty node name.
//   - ErrUnknownNode if an implicant mentions a node missing from primes.
//
// Totality of the logic is not checked here (it would cost 2^n evaluations);
// Eval reports ErrInconsistentLogic for each state it meets that violates it.
func New(primes map[string]Primes) (*Network, error) {
	if len(primes) == 0 {
		return nil, ErrEmptyNetwork
	}

	names := make([]string, 0, len(primes))
	for name := range primes {
		if name == "" {
			return nil, fmt.Errorf("%w: empty node name", ErrInvalidParameter)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	net := &Network{
		names: names,
		index: make(map[string]int, len(names)),
		rules: make([]rule, len(names)),
	}
	for i, name := range names {
		net.index[name] = i
	}

	var err error
	for i, name := range names {
		p := primes[name]
		if net.rules[i].negative, err = net.compileAll(name, p.Negative); err != nil {
			return nil, err
		}
		if net.rules[i].positive, err = net.compileAll(name, p.Positive); err != nil {
			return nil, err
		}
	}

	return net, nil
}

// compileAll converts name-keyed assignments of target into implicants.
func (n *Network) compileAll(target string, as []Assignment) ([]Implicant, error) {
	out := make([]Implicant, 0, len(as))
	for _, a := range as {
		imp := make(Implicant, 0, len(a))
		for name, v := range a {
			i, ok := n.index[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q in an implicant of %q", ErrUnknownNode, name, target)
			}
			imp = append(imp, Literal{Node: i, Value: v})
		}
		slices.SortFunc(imp, func(a, b Literal) int { return a.Node - b.Node })
		out = append(out, imp)
	}
	return out, nil
}

// Len returns the number of nodes.
func (n *Network) Len() int { return len(n.names) }

// Nodes returns the node names in coordinate order. The slice is a copy.
func (n *Network) Nodes() []string { return slices.Clone(n.names) }

// Name returns the name of node i.
func (n *Network) Name(i int) string { return n.names[i] }

// Index returns the coordinate of the named node.
func (n *Network) Index(name string) (int, bool) {
	i, ok := n.index[name]
	return i, ok
}

// Positive returns the compiled positive implicants of node i.
// The returned slice must not be modified.
func (n *Network) Positive(i int) []Implicant { return n.rules[i].positive }

// Negative returns the compiled negative implicants of node i.
// The returned slice must not be modified.
func (n *Network) Negative(i int) []Implicant { return n.rules[i].negative }

// Primes returns the name-keyed logic of a node, freshly allocated.
func (n *Network) Primes(name string) (Primes, bool) {
	i, ok := n.index[name]
	if !ok {
		return Primes{}, false
	}
	return Primes{
		Negative: n.decompile(n.rules[i].negative),
		Positive: n.decompile(n.rules[i].positive),
	}, true
}

func (n *Network) decompile(imps []Implicant) []Assignment {
	out := make([]Assignment, len(imps))
	for k, imp := range imps {
		a := make(Assignment, len(imp))
		for _, l := range imp {
			a[n.names[l.Node]] = l.Value
		}
		out[k] = a
	}
	return out
}

// Eval computes the value node i takes in the next step from state s.
//
// It returns a *LogicError (matching ErrInconsistentLogic) when s matches no
// implicant of the node, or a positive and a negative one at once.
func (n *Network) Eval(i int, s State) (bool, error) {
	if err := n.check(s); err != nil {
		return false, err
	}
	if i < 0 || i >= len(n.names) {
		return false, fmt.Errorf("%w: node index %d out of range [0,%d)", ErrInvalidParameter, i, len(n.names))
	}
	return n.eval(i, s)
}

// eval is Eval without argument checks, for hot loops that validated once.
func (n *Network) eval(i int, s State) (bool, error) {
	r := &n.rules[i]
	pos := anyMatch(r.positive, s)
	neg := anyMatch(r.negative, s)
	if pos == neg {
		return false, &LogicError{Node: n.names[i], State: s, Positive: pos, Negative: neg}
	}
	return pos, nil
}

func anyMatch(imps []Implicant, s State) bool {
	for _, imp := range imps {
		if imp.Matches(s) {
			return true
		}
	}
	return false
}

// Next evaluates every node on s and returns the synchronous image of s.
func (n *Network) Next(s State) (State, error) {
	if err := n.check(s); err != nil {
		return State{}, err
	}
	buf := make([]byte, len(n.names))
	for i := range n.names {
		v, err := n.eval(i, s)
		if err != nil {
			return State{}, err
		}
		if v {
			buf[i] = 1
		}
	}
	return State{bits: string(buf)}, nil
}

// Flippable returns, in node order, the indexes of the nodes whose own rule
// would change their value in s.
func (n *Network) Flippable(s State) ([]int, error) {
	if err := n.check(s); err != nil {
		return nil, err
	}
	var out []int
	for i := range n.names {
		v, err := n.eval(i, s)
		if err != nil {
			return nil, err
		}
		if v != s.Get(i) {
			out = append(out, i)
		}
	}
	return out, nil
}

// check validates that s is a full assignment of n.
func (n *Network) check(s State) error {
	if s.Len() != len(n.names) {
		return fmt.Errorf("%w: state has %d coordinates, network has %d nodes",
			ErrInvalidParameter, s.Len(), len(n.names))
	}
	return nil
}

// Value returns the value of the named node in s.
func (n *Network) Value(s State, name string) (bool, error) {
	if err := n.check(s); err != nil {
		return false, err
	}
	i, ok := n.index[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return s.Get(i), nil
}

// StateOf converts a total name-keyed assignment into a State.
func (n *Network) StateOf(a Assignment) (State, error) {
	bits := make([]bool, len(n.names))
	for name, v := range a {
		i, ok := n.index[name]
		if !ok {
			return State{}, fmt.Errorf("%w: %q", ErrUnknownNode, name)
		}
		bits[i] = v
	}
	if len(a) != len(n.names) {
		return State{}, fmt.Errorf("%w: assignment covers %d of %d nodes",
			ErrInvalidParameter, len(a), len(n.names))
	}
	return NewState(bits), nil
}

// Assignment converts s back into a name-keyed map.
func (n *Network) Assignment(s State) (Assignment, error) {
	if err := n.check(s); err != nil {
		return nil, err
	}
	a := make(Assignment, len(n.names))
	for i, name := range n.names {
		a[name] = s.Get(i)
	}
	return a, nil
}

// StateFromIndex returns the state whose coordinate i is bit i of k.
func (n *Network) StateFromIndex(k uint64) (State, error) {
	if len(n.names) > MaxEnumerableNodes {
		return State{}, fmt.Errorf("%w: %d nodes exceed the enumerable limit %d",
			ErrInvalidParameter, len(n.names), MaxEnumerableNodes)
	}
	if k>>uint(len(n.names)) != 0 {
		return State{}, fmt.Errorf("%w: index %d out of range for %d nodes",
			ErrInvalidParameter, k, len(n.names))
	}
	buf := make([]byte, len(n.names))
	for i := range buf {
		buf[i] = byte(k >> uint(i) & 1)
	}
	return State{bits: string(buf)}, nil
}

// AllStates lists the 2^Len() full assignments in index order
// (see StateFromIndex).
func (n *Network) AllStates() ([]State, error) {
	if len(n.names) > MaxEnumerableNodes {
		return nil, fmt.Errorf("%w: %d nodes exceed the enumerable limit %d",
			ErrInvalidParameter, len(n.names), MaxEnumerableNodes)
	}
	total := uint64(1) << uint(len(n.names))
	out := make([]State, 0, total)
	for k := uint64(0); k < total; k++ {
		s, _ := n.StateFromIndex(k)
		out = append(out, s)
	}
	return out, nil
}
