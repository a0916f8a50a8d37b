// SPDX-License-Identifier: MIT

package series

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for series access and comparison.
var (
	// ErrUnknownNode indicates the node has no sequence in the series.
	ErrUnknownNode = errors.New("series: unknown node")

	// ErrStepOutOfRange indicates a time step outside [0, Steps()).
	ErrStepOutOfRange = errors.New("series: step out of range")

	// ErrShapeMismatch indicates two series with different nodes or lengths.
	ErrShapeMismatch = errors.New("series: shape mismatch")

	// ErrOutOfRange indicates a probability that is NaN, infinite or outside [0,1].
	ErrOutOfRange = errors.New("series: probability out of range")
)

// Series maps every node to its marginal activation probability at
// t = 0 .. Steps()-1. The field tags give the record read by plotting
// scripts: {"state_variables": [...], "simulation": {node: [...]}}.
type Series struct {
	Nodes  []string             `json:"state_variables" yaml:"state_variables"`
	Values map[string][]float64 `json:"simulation" yaml:"simulation"`
}

// New returns a zero-filled series for nodes over steps time steps.
func New(nodes []string, steps int) *Series {
	s := &Series{
		Nodes:  slices.Clone(nodes),
		Values: make(map[string][]float64, len(nodes)),
	}
	for _, n := range nodes {
		s.Values[n] = make([]float64, steps)
	}
	return s
}

// Steps returns the length of the sequences (0 for an empty series).
func (s *Series) Steps() int {
	if len(s.Nodes) == 0 {
		return 0
	}
	return len(s.Values[s.Nodes[0]])
}

func (s *Series) seq(node string, t int) ([]float64, error) {
	ps, ok := s.Values[node]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, node)
	}
	if t < 0 || t >= len(ps) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrStepOutOfRange, t, len(ps))
	}
	return ps, nil
}

// At returns the probability of node at step t.
func (s *Series) At(node string, t int) (float64, error) {
	ps, err := s.seq(node, t)
	if err != nil {
		return 0, err
	}
	return ps[t], nil
}

// Set stores p as the probability of node at step t.
func (s *Series) Set(node string, t int, p float64) error {
	ps, err := s.seq(node, t)
	if err != nil {
		return err
	}
	ps[t] = p
	return nil
}

// Snapshot returns the marginals of every node at step t.
func (s *Series) Snapshot(t int) (map[string]float64, error) {
	out := make(map[string]float64, len(s.Nodes))
	for _, n := range s.Nodes {
		p, err := s.At(n, t)
		if err != nil {
			return nil, err
		}
		out[n] = p
	}
	return out, nil
}

// Entropy returns the mean binary entropy (bits) of the node marginals at
// step t. A marginal of exactly 0 or 1 contributes 0.
func (s *Series) Entropy(t int) (float64, error) {
	if len(s.Nodes) == 0 {
		return 0, nil
	}
	var sum float64
	for _, n := range s.Nodes {
		p, err := s.At(n, t)
		if err != nil {
			return 0, err
		}
		sum += binaryEntropy(p)
	}
	return sum / float64(len(s.Nodes)), nil
}

func binaryEntropy(p float64) float64 {
	if p <= 0 || p >= 1 {
		return 0
	}
	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}

// MaxAbsDiff returns max |s[n][t] - o[n][t]| over all nodes and steps.
// Both series must list the same nodes in the same order with equal lengths.
func (s *Series) MaxAbsDiff(o *Series) (float64, error) {
	if !slices.Equal(s.Nodes, o.Nodes) {
		return 0, fmt.Errorf("%w: nodes %v vs %v", ErrShapeMismatch, s.Nodes, o.Nodes)
	}
	var worst float64
	for _, n := range s.Nodes {
		a, b := s.Values[n], o.Values[n]
		if len(a) != len(b) {
			return 0, fmt.Errorf("%w: node %q has %d vs %d steps", ErrShapeMismatch, n, len(a), len(b))
		}
		for t := range a {
			worst = math.Max(worst, math.Abs(a[t]-b[t]))
		}
	}
	return worst, nil
}

// Validate checks that every node has a sequence of the common length and
// that every value is a finite probability.
func (s *Series) Validate() error {
	steps := s.Steps()
	for _, n := range s.Nodes {
		ps, ok := s.Values[n]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownNode, n)
		}
		if len(ps) != steps {
			return fmt.Errorf("%w: node %q has %d steps, want %d", ErrShapeMismatch, n, len(ps), steps)
		}
		for t, p := range ps {
			if math.IsNaN(p) || p < 0 || p > 1 {
				return fmt.Errorf("%w: %s[%d] = %v", ErrOutOfRange, n, t, p)
			}
		}
	}
	return nil
}

// WriteJSON encodes the series as an indented JSON record.
func (s *Series) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteYAML encodes the series as YAML.
func (s *Series) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// ReadJSON decodes a record written by WriteJSON and validates it.
func ReadJSON(r io.Reader) (*Series, error) {
	var s Series
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("series: decoding: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
