package exact_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolprob/exact"
	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/network/networktest"
	"github.com/katalvlaran/boolprob/successor"
)

var disciplines = []successor.Discipline{successor.Synchronous, successor.Asynchronous}

// TestEnumerate_InvalidParameters verifies rejection of bad steps, disciplines and options.
func TestEnumerate_InvalidParameters(t *testing.T) {
	net := networktest.Identity()

	_, err := exact.Enumerate(net, successor.Synchronous, 0)
	assert.ErrorIs(t, err, network.ErrInvalidParameter, "steps = 0")
	_, err = exact.Enumerate(net, successor.Synchronous, -3)
	assert.ErrorIs(t, err, network.ErrInvalidParameter, "negative steps")
	_, err = exact.Enumerate(net, successor.Discipline(9), 3)
	assert.ErrorIs(t, err, network.ErrInvalidParameter, "unknown discipline")
	_, err = exact.Enumerate(nil, successor.Synchronous, 3)
	assert.ErrorIs(t, err, network.ErrInvalidParameter, "nil network")
	_, err = exact.Enumerate(net, successor.Synchronous, 3, exact.WithWorkers(0))
	assert.ErrorIs(t, err, network.ErrInvalidParameter, "zero workers")
	_, err = exact.Enumerate(net, successor.Synchronous, 3, exact.WithMaxEntries(0))
	assert.ErrorIs(t, err, network.ErrInvalidParameter, "zero max entries")
}

// TestEnumerate_FixedPoint: X' = X keeps the uniform prior at every step.
func TestEnumerate_FixedPoint(t *testing.T) {
	for _, d := range disciplines {
		s, err := exact.Enumerate(networktest.Identity(), d, 6)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, s.Values["X"], d.String())
	}
}

// TestEnumerate_Oscillator: X' = !X swaps halves of the uniform prior, so the
// marginal stays 0.5.
func TestEnumerate_Oscillator(t *testing.T) {
	s, err := exact.Enumerate(networktest.Oscillator(), successor.Synchronous, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5, 0.5}, s.Values["X"])
}

// TestEnumerate_Driver: B copies the constant A, so both stay at 0.5.
func TestEnumerate_Driver(t *testing.T) {
	for _, d := range disciplines {
		s, err := exact.Enumerate(networktest.Driver(), d, 4)
		require.NoError(t, err)
		assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, s.Values["A"], d.String())
		assert.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, s.Values["B"], d.String())
	}
}

// TestEnumerate_FeedbackByHand checks the Feedback network against values
// worked out by hand.
//
// Synchronous, A' = A, B' = A & !C, C' = B, uniform start:
//
//	t=0: A=.5  B=.5   C=.5
//	t=1: B = P(A & !C) = .25, C = P(B) = .5
//	t=2: B = P(A & !B0) = .25, C = .25
func TestEnumerate_FeedbackByHand(t *testing.T) {
	s, err := exact.Enumerate(networktest.Feedback(), successor.Synchronous, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, s.Values["A"], 1e-15)
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.25}, s.Values["B"], 1e-15)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.25}, s.Values["C"], 1e-15)
}

// TestEnumerate_AsyncWeighting checks the per-branch weighting on the toggle
// switch A' = !B, B' = !A. From 00 and 11 two successors share the weight;
// 01 and 10 are steady.
//
//	t=1: 00 → {10, 01} (.125 each), 11 → {01, 10} (.125 each), 01, 10 stay.
//	     Mass: 01 = .5, 10 = .5, so A = B = .5.
func TestEnumerate_AsyncWeighting(t *testing.T) {
	s, err := exact.Enumerate(networktest.Toggle(), successor.Asynchronous, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, s.Values["A"], 1e-15)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, s.Values["B"], 1e-15)

	// Synchronous toggle: 00 <-> 11 oscillate, 01 and 10 are fixed points.
	s, err = exact.Enumerate(networktest.Toggle(), successor.Synchronous, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, s.Values["A"], 1e-15)
}

// TestEnumerate_UnevenBranching pins the w/k weighting where branch counts
// differ. Feedback under asynchronous update, from each of the 8 states
// (weight 1/8):
//
//	000 steady        001 → 000         010 → {000, 011}   011 → 001
//	100 → 110         101 → 100         110 → 111          111 → 101
//
// Weighted (010 splits 1/16 + 1/16): B = 1/16 + 2/8 = 5/16,
// C = 1/16 + 3/8 = 7/16. Counting the 9 entries instead gives
// A = 4/9, B = 3/9, C = 4/9.
func TestEnumerate_UnevenBranching(t *testing.T) {
	net := networktest.Feedback()

	s, err := exact.Enumerate(net, successor.Asynchronous, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, s.Values["A"][1], 1e-15)
	assert.InDelta(t, 5.0/16, s.Values["B"][1], 1e-15)
	assert.InDelta(t, 7.0/16, s.Values["C"][1], 1e-15)

	c, err := exact.Enumerate(net, successor.Asynchronous, 2, exact.WithPathCounting())
	require.NoError(t, err)
	assert.InDelta(t, 4.0/9, c.Values["A"][1], 1e-12)
	assert.InDelta(t, 3.0/9, c.Values["B"][1], 1e-12)
	assert.InDelta(t, 4.0/9, c.Values["C"][1], 1e-12)
	assert.NoError(t, c.Validate())
}

// TestEnumerate_PathCountingSynchronous: with one successor per state the
// two weightings coincide.
func TestEnumerate_PathCountingSynchronous(t *testing.T) {
	net := networktest.Feedback4()
	w, err := exact.Enumerate(net, successor.Synchronous, 6)
	require.NoError(t, err)
	c, err := exact.Enumerate(net, successor.Synchronous, 6, exact.WithPathCounting(), exact.WithWorkers(3))
	require.NoError(t, err)
	diff, err := w.MaxAbsDiff(c)
	require.NoError(t, err)
	assert.Less(t, diff, 1e-12)
}

// TestEnumerate_WorkerSweep covers every worker count from 1 to 9 on
// generations whose sizes change between steps.
func TestEnumerate_WorkerSweep(t *testing.T) {
	for _, net := range []*network.Network{networktest.Feedback(), networktest.Feedback4()} {
		for _, d := range disciplines {
			base, err := exact.Enumerate(net, d, 6)
			require.NoError(t, err)
			for k := 1; k <= 9; k++ {
				got, err := exact.Enumerate(net, d, 6, exact.WithWorkers(k))
				require.NoError(t, err, "workers=%d (%v)", k, d)
				assert.Equal(t, base, got, "workers=%d (%v)", k, d)
			}
		}
	}
}

// TestEnumerate_Deterministic verifies bit-for-bit reproducibility, worker
// independence and merge equivalence.
func TestEnumerate_Deterministic(t *testing.T) {
	net := networktest.Feedback4()
	for _, d := range disciplines {
		base, err := exact.Enumerate(net, d, 6)
		require.NoError(t, err)

		again, err := exact.Enumerate(net, d, 6)
		require.NoError(t, err)
		assert.Equal(t, base, again, "re-run must be identical (%v)", d)

		for _, k := range []int{2, 3, 7, 64} {
			par, err := exact.Enumerate(net, d, 6, exact.WithWorkers(k))
			require.NoError(t, err)
			assert.Equal(t, base, par, "workers=%d must not change the result (%v)", k, d)
		}

		merged, err := exact.Enumerate(net, d, 6, exact.WithMergeDuplicates(), exact.WithWorkers(3))
		require.NoError(t, err)
		diff, err := base.MaxAbsDiff(merged)
		require.NoError(t, err)
		assert.Less(t, diff, 1e-12, "merging must keep the marginals (%v)", d)
		assert.NoError(t, merged.Validate())
	}
}

// TestEnumerate_StateExplosion checks the entry guard at start and during growth.
func TestEnumerate_StateExplosion(t *testing.T) {
	_, err := exact.Enumerate(networktest.Feedback(), successor.Synchronous, 2, exact.WithMaxEntries(4))
	assert.ErrorIs(t, err, exact.ErrStateExplosion, "8 initial states over a limit of 4")

	// Toggle, asynchronous: 4 entries at t=0, 6 at t=1.
	_, err = exact.Enumerate(networktest.Toggle(), successor.Asynchronous, 2, exact.WithMaxEntries(5))
	assert.ErrorIs(t, err, exact.ErrStateExplosion)

	_, err = exact.Enumerate(networktest.Toggle(), successor.Asynchronous, 2,
		exact.WithMaxEntries(5), exact.WithMergeDuplicates(), exact.WithWorkers(2))
	assert.ErrorIs(t, err, exact.ErrStateExplosion, "merging happens after the guard")

	s, err := exact.Enumerate(networktest.Toggle(), successor.Asynchronous, 2, exact.WithMaxEntries(6))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Steps())
}

// TestEnumerate_InconsistentLogic surfaces malformed rules.
func TestEnumerate_InconsistentLogic(t *testing.T) {
	for _, d := range disciplines {
		_, err := exact.Enumerate(networktest.Inconsistent(), d, 2, exact.WithWorkers(2))
		assert.ErrorIs(t, err, network.ErrInconsistentLogic, d.String())
	}

	s, err := exact.Enumerate(networktest.Inconsistent(), successor.Synchronous, 1)
	require.NoError(t, err, "a single step evaluates no rule")
	assert.Equal(t, []float64{0.5}, s.Values["A"])
}

// TestEnumerate_Cancelled returns the context error.
func TestEnumerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := exact.Enumerate(networktest.Feedback(), successor.Asynchronous, 4, exact.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
