// SPDX-License-Identifier: MIT

package meanfield

import (
	"fmt"
	"maps"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/series"
)

// Fix pins one node to 0 or 1.
type Fix struct {
	Node  string `json:"node" yaml:"node"`
	Value bool   `json:"value" yaml:"value"`
}

// String renders the fix as "node=0" or "node=1".
func (f Fix) String() string {
	if f.Value {
		return f.Node + "=1"
	}
	return f.Node + "=0"
}

// DriverSet is the result of FindDriverSet.
type DriverSet struct {
	// Fixes lists the chosen fixes in selection order.
	Fixes []Fix

	// Fixed holds every pinned node: the starting Options.Fixed plus Fixes.
	Fixed map[string]float64

	// Entropy is the mean binary entropy of the final step under Fixed.
	Entropy float64

	// Series is the approximation under Fixed.
	Series *series.Series
}

// FindDriverSet greedily pins nodes until the mean-field marginals at the
// last step are fully determined.
//
// Each round tries every node not yet fixed at 0 and at 1, runs Approximate
// with that fix added, and keeps the candidate whose final-step entropy is
// lowest; ties go to the earlier candidate in node order, value 0 first.
// The search stops when the entropy reaches 0 or every node is fixed.
// Nodes in opts.Fixed are part of the starting set and never revisited.
//
// Candidates of one round are evaluated on opts.Workers goroutines; each
// evaluation itself runs single-threaded, so the outcome does not depend on
// the worker count.
//
// Errors: as Approximate.
//
// Complexity: O(N²) calls to Approximate in the worst case.
func FindDriverSet(net *network.Network, steps int, mode Mode, opts *Options) (*DriverSet, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	fixed := maps.Clone(o.Fixed)
	if fixed == nil {
		fixed = make(map[string]float64)
	}

	// Stage 1: the starting point also validates every argument.
	base := o
	base.Fixed = fixed
	s, err := Approximate(net, steps, mode, &base)
	if err != nil {
		return nil, err
	}
	h, err := s.Entropy(steps - 1)
	if err != nil {
		return nil, err
	}
	ds := &DriverSet{Fixed: fixed, Entropy: h, Series: s}

	// Stage 2: greedy rounds.
	for ds.Entropy > 0 {
		cands := candidates(net, ds.Fixed)
		if len(cands) == 0 {
			break
		}
		results := make([]*series.Series, len(cands))
		scores := make([]float64, len(cands))

		var g errgroup.Group
		g.SetLimit(o.Workers)
		for c, fix := range cands {
			c, fix := c, fix
			g.Go(func() error {
				trial := o
				trial.Workers = 1
				trial.Fixed = maps.Clone(ds.Fixed)
				trial.Fixed[fix.Node] = boolProb(fix.Value)
				out, err := Approximate(net, steps, mode, &trial)
				if err != nil {
					return fmt.Errorf("trying %v: %w", fix, err)
				}
				h, err := out.Entropy(steps - 1)
				if err != nil {
					return err
				}
				results[c], scores[c] = out, h
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		best := 0
		for c := 1; c < len(cands); c++ {
			if scores[c] < scores[best] {
				best = c
			}
		}
		ds.Fixes = append(ds.Fixes, cands[best])
		ds.Fixed[cands[best].Node] = boolProb(cands[best].Value)
		ds.Entropy = scores[best]
		ds.Series = results[best]
	}
	return ds, nil
}

// candidates lists the unit fixes of every unfixed node in index order.
func candidates(net *network.Network, fixed map[string]float64) []Fix {
	out := make([]Fix, 0, 2*net.Len())
	for _, name := range net.Nodes() {
		if _, ok := fixed[name]; ok {
			continue
		}
		out = append(out, Fix{Node: name, Value: false}, Fix{Node: name, Value: true})
	}
	return out
}

func boolProb(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
