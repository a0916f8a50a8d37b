package montecarlo

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/series"
	"github.com/katalvlaran/boolprob/successor"
)

// Simulate estimates the marginal activation probability of every node at
// steps 0 .. steps-1 from trials random trajectories.
//
// Each trial draws its initial state uniformly from the 2^n assignments,
// then takes steps-1 transitions, each to a uniformly chosen successor under
// d. When a state has no successor (an asynchronous steady state) the
// trajectory stays put. The estimate of node i at step t is the fraction of
// trials in which i was 1 at t.
//
// Errors:
//   - network.ErrInvalidParameter for trials <= 0, steps <= 0, an unknown
//     discipline, a nil network or a bad Option.
//   - network.ErrInconsistentLogic from rule evaluation.
//   - ctx.Err() on cancellation.
//
// Complexity: O(trials · steps · n · P) time where P is the implicant count
// per node; O(workers · steps · n) memory.
func Simulate(net *network.Network, d successor.Discipline, steps, trials int, opts ...Option) (*series.Series, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: montecarlo: network is nil", network.ErrInvalidParameter)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: montecarlo: steps must be > 0 (%d)", network.ErrInvalidParameter, steps)
	}
	if trials <= 0 {
		return nil, fmt.Errorf("%w: montecarlo: trials must be > 0 (%d)", network.ErrInvalidParameter, trials)
	}
	next, err := successor.For(d)
	if err != nil {
		return nil, err
	}

	base := o.Rand
	if base == nil {
		base = rngFromSeed(o.Seed)
	}
	k := min(o.Workers, trials)
	streams := workerStreams(base, k)
	counts := make([][]int64, k)

	g, ctx := errgroup.WithContext(o.Ctx)
	per, rem := trials/k, trials%k
	for w := 0; w < k; w++ {
		n := per
		if w < rem {
			n++
		}
		w := w
		r := &runner{net: net, next: next, steps: steps, rng: streams[w]}
		g.Go(func() error {
			c, err := r.run(ctx, n)
			counts[w] = c
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := series.New(net.Nodes(), steps)
	nodes := net.Len()
	for t := 0; t < steps; t++ {
		for i, name := range out.Nodes {
			var c int64
			for w := range counts {
				c += counts[w][t*nodes+i]
			}
			out.Values[name][t] = float64(c) / float64(trials)
		}
	}
	return out, nil
}

// runner owns everything one worker touches.
type runner struct {
	net   *network.Network
	next  successor.Func
	steps int
	rng   *rand.Rand
}

// run simulates trials trajectories and returns the activation counts,
// laid out as counts[t*n+i].
func (r *runner) run(ctx context.Context, trials int) ([]int64, error) {
	n := r.net.Len()
	counts := make([]int64, r.steps*n)
	buf := make([]bool, n)

	for trial := 0; trial < trials; trial++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		cur := randomState(r.rng, n, buf)
		tally(counts[:n], cur)
		for t := 1; t < r.steps; t++ {
			succ, err := r.next(r.net, cur)
			if err != nil {
				return nil, err
			}
			switch len(succ) {
			case 0:
				// steady: stay
			case 1:
				cur = succ[0]
			default:
				cur = succ[r.rng.Intn(len(succ))]
			}
			tally(counts[t*n:(t+1)*n], cur)
		}
	}
	return counts, nil
}

// tally adds the bits of s into row.
func tally(row []int64, s network.State) {
	for i := range row {
		if s.Get(i) {
			row[i]++
		}
	}
}
