// SPDX-License-Identifier: MIT

package meanfield

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/series"
)

// maxFreeCoordinates bounds the completions enumerated for one implicant.
const maxFreeCoordinates = 62

// BuildTables expands, for every node in index order, the subspaces of its
// positive implicants into full rows. A row shared by several implicants is
// kept once, at its first occurrence.
//
// Errors: ErrTableTooLarge when a node would exceed maxRows rows;
// network.ErrInvalidParameter for maxRows < 1.
//
// Complexity: O(Σ_p 2^(n-|p|) · n) over all positive implicants p.
func BuildTables(net *network.Network, maxRows int) ([]Table, error) {
	if maxRows < 1 {
		return nil, fmt.Errorf("%w: meanfield: max table rows must be >= 1 (%d)", network.ErrInvalidParameter, maxRows)
	}
	n := net.Len()
	tables := make([]Table, n)
	bits := make([]bool, n)
	free := make([]int, 0, n)

	for i := 0; i < n; i++ {
		seen := make(map[network.State]struct{})
		rows := make([]network.State, 0)

		for _, imp := range net.Positive(i) {
			// Stage 1: fixed coordinates and the free ones left to complete.
			fixed := make([]bool, n)
			for k := range bits {
				bits[k] = false
			}
			for _, l := range imp {
				fixed[l.Node] = true
				bits[l.Node] = l.Value
			}
			free = free[:0]
			for k := 0; k < n; k++ {
				if !fixed[k] {
					free = append(free, k)
				}
			}
			if len(free) > maxFreeCoordinates {
				return nil, fmt.Errorf("%w: node %q, implicant with %d free coordinates",
					ErrTableTooLarge, net.Name(i), len(free))
			}

			// Stage 2: every completion of the free coordinates.
			for c := uint64(0); c < uint64(1)<<uint(len(free)); c++ {
				for j, k := range free {
					bits[k] = c>>uint(j)&1 == 1
				}
				row := network.NewState(bits)
				if _, dup := seen[row]; dup {
					continue
				}
				if len(rows) == maxRows {
					return nil, fmt.Errorf("%w: node %q, limit %d rows", ErrTableTooLarge, net.Name(i), maxRows)
				}
				seen[row] = struct{}{}
				rows = append(rows, row)
			}
		}
		tables[i] = Table{Node: net.Name(i), Rows: rows}
	}
	return tables, nil
}

// Approximate computes the independent Boolean mean-field approximation of
// the marginal activation probabilities at steps 0 .. steps-1.
//
// Step 0 is 0.5 for every node. Step t ≥ 1 evaluates, per node,
//
//	raw = Σ_{rows r} Π_m (r[m] ? p[m][t-1] : 1 - p[m][t-1])
//
// assuming all nodes independent at t-1, then applies mode. Nodes listed in
// opts.Fixed keep their pinned value at every step. A nil opts uses
// DefaultOptions.
//
// Errors:
//   - network.ErrInvalidParameter for steps <= 0, an unknown mode, a nil
//     network, Workers < 1 or a fixed value outside [0,1].
//   - network.ErrUnknownNode for a fixed node missing from the network.
//   - ErrTableTooLarge from BuildTables.
//
// Complexity: O(steps · Σ_n |table(n)| · N) time after table construction.
func Approximate(net *network.Network, steps int, mode Mode, opts *Options) (*series.Series, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: meanfield: network is nil", network.ErrInvalidParameter)
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: meanfield: steps must be > 0 (%d)", network.ErrInvalidParameter, steps)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: meanfield: unknown mode %v", network.ErrInvalidParameter, mode)
	}
	if o.Workers < 1 {
		return nil, fmt.Errorf("%w: meanfield: workers must be >= 1 (%d)", network.ErrInvalidParameter, o.Workers)
	}

	n := net.Len()
	fixed := make([]bool, n)
	prev := make([]float64, n)
	for i := range prev {
		prev[i] = 0.5
	}
	for name, p := range o.Fixed {
		i, ok := net.Index(name)
		if !ok {
			return nil, fmt.Errorf("%w: fixed node %q", network.ErrUnknownNode, name)
		}
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, fmt.Errorf("%w: meanfield: fixed probability %v for %q", network.ErrInvalidParameter, p, name)
		}
		fixed[i] = true
		prev[i] = p
	}

	tables, err := BuildTables(net, o.MaxTableRows)
	if err != nil {
		return nil, err
	}

	out := series.New(net.Nodes(), steps)
	store := func(t int, ps []float64) {
		for i, name := range out.Nodes {
			out.Values[name][t] = ps[i]
		}
	}
	store(0, prev)

	k := min(o.Workers, n)
	for t := 1; t < steps; t++ {
		cur := make([]float64, n)
		var g errgroup.Group
		for c := 0; c < k; c++ {
			lo, hi := c*n/k, (c+1)*n/k
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					if fixed[i] {
						cur[i] = prev[i]
						continue
					}
					raw := rowMass(tables[i].Rows, prev)
					if mode == AsynchronousBlend {
						raw = (raw + float64(n-1)*prev[i]) / float64(n)
					}
					cur[i] = clamp01(raw)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		store(t, cur)
		prev = cur
	}
	return out, nil
}

// rowMass returns the probability of the rows under independent marginals p.
func rowMass(rows []network.State, p []float64) float64 {
	var sum float64
	for _, r := range rows {
		prod := 1.0
		for m := range p {
			if r.Get(m) {
				prod *= p[m]
			} else {
				prod *= 1 - p[m]
			}
		}
		sum += prod
	}
	return sum
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
