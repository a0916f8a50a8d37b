package exact

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/series"
	"github.com/katalvlaran/boolprob/successor"
)

// enumerator encapsulates the state of one Enumerate call.
type enumerator struct {
	net  *network.Network
	next successor.Func
	opts Options
	ctx  context.Context
	out  *series.Series
}

// Enumerate computes the exact marginal activation probability of every node
// at steps 0 .. steps-1.
//
// Generation 0 holds every full assignment with weight 2^-n. Each following
// generation replaces every entry (s, w) by its successors under d, each with
// weight w/k where k is the number of successors; a steady state (no
// asynchronous successor) keeps (s, w). The marginal of node i is the weight
// of entries with i set divided by the total weight.
//
// Errors:
//   - network.ErrInvalidParameter for steps <= 0, an unknown discipline, a nil
//     network or a bad Option.
//   - ErrStateExplosion when the initial 2^n states or any later generation
//     would exceed Options.MaxEntries.
//   - network.ErrInconsistentLogic from rule evaluation.
//   - ctx.Err() on cancellation.
//
// Complexity: O(Σ_t |G_t| · n · P) time where P is the implicant count per
// node; |G_t| grows by up to the branching factor each step unless merging
// is enabled, which caps it at 2^n.
func Enumerate(net *network.Network, d successor.Discipline, steps int, opts ...Option) (*series.Series, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: exact: network is nil", network.ErrInvalidParameter)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: exact: steps must be > 0 (%d)", network.ErrInvalidParameter, steps)
	}
	next, err := successor.For(d)
	if err != nil {
		return nil, err
	}
	if net.Len() > network.MaxEnumerableNodes || 1<<uint(net.Len()) > o.MaxEntries {
		return nil, fmt.Errorf("%w: %d nodes give %d initial states, limit %d",
			ErrStateExplosion, net.Len(), uint64(1)<<uint(net.Len()), o.MaxEntries)
	}

	states, err := net.AllStates()
	if err != nil {
		return nil, err
	}
	gen := make([]entry, len(states))
	w := 1 / float64(len(states))
	for i, s := range states {
		gen[i] = entry{state: s, weight: w}
	}

	e := &enumerator{
		net:  net,
		next: next,
		opts: o,
		ctx:  o.Ctx,
		out:  series.New(net.Nodes(), steps),
	}
	e.record(0, gen)

	for t := 1; t < steps; t++ {
		select {
		case <-e.ctx.Done():
			return nil, e.ctx.Err()
		default:
		}

		if gen, err = e.expand(gen); err != nil {
			return nil, err
		}
		if o.Merge {
			gen = merge(gen)
		}
		e.record(t, gen)
	}
	return e.out, nil
}

// expand builds the next generation. The current one is cut into
// o.Workers contiguous chunks whose sizes differ by at most one; chunk
// outputs are concatenated in order so the result does not depend on the
// worker count.
func (e *enumerator) expand(gen []entry) ([]entry, error) {
	k := min(e.opts.Workers, len(gen))
	parts := make([][]entry, k)

	g, ctx := errgroup.WithContext(e.ctx)
	for c := 0; c < k; c++ {
		c := c
		lo, hi := c*len(gen)/k, (c+1)*len(gen)/k
		g.Go(func() error {
			part, err := e.expandChunk(ctx, gen[lo:hi])
			parts[c] = part
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	if total > e.opts.MaxEntries {
		return nil, fmt.Errorf("%w: %d entries, limit %d", ErrStateExplosion, total, e.opts.MaxEntries)
	}
	next := make([]entry, 0, total)
	for _, p := range parts {
		next = append(next, p...)
	}
	return next, nil
}

// expandChunk replaces every entry of chunk by its weighted successors.
func (e *enumerator) expandChunk(ctx context.Context, chunk []entry) ([]entry, error) {
	out := make([]entry, 0, len(chunk))
	for _, en := range chunk {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		succ, err := e.next(e.net, en.state)
		if err != nil {
			return nil, err
		}
		if len(succ) == 0 {
			out = append(out, en)
			continue
		}
		w := en.weight
		if !e.opts.PathCounting {
			w /= float64(len(succ))
		}
		for _, s := range succ {
			out = append(out, entry{state: s, weight: w})
		}
		if len(out) > e.opts.MaxEntries {
			return nil, fmt.Errorf("%w: more than %d entries", ErrStateExplosion, e.opts.MaxEntries)
		}
	}
	return out, nil
}

// merge sums the weights of equal states, keeping first-seen order.
func merge(gen []entry) []entry {
	pos := make(map[network.State]int, len(gen))
	out := make([]entry, 0, len(gen))
	for _, en := range gen {
		if i, ok := pos[en.state]; ok {
			out[i].weight += en.weight
			continue
		}
		pos[en.state] = len(out)
		out = append(out, en)
	}
	return out
}

// record writes the marginals of gen into step t of the output.
func (e *enumerator) record(t int, gen []entry) {
	n := e.net.Len()
	ones := make([]float64, n)
	var total float64
	for _, en := range gen {
		total += en.weight
		for i := 0; i < n; i++ {
			if en.state.Get(i) {
				ones[i] += en.weight
			}
		}
	}
	for i, name := range e.out.Nodes {
		e.out.Values[name][t] = math.Min(1, ones[i]/total)
	}
}
