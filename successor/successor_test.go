package successor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolprob/network"
	"github.com/katalvlaran/boolprob/network/networktest"
	"github.com/katalvlaran/boolprob/successor"
)

// TestParseDiscipline covers accepted spellings and the error path.
func TestParseDiscipline(t *testing.T) {
	cases := map[string]successor.Discipline{
		"sync":         successor.Synchronous,
		"Synchronous":  successor.Synchronous,
		"s":            successor.Synchronous,
		" async ":      successor.Asynchronous,
		"ASYNCHRONOUS": successor.Asynchronous,
		"a":            successor.Asynchronous,
	}
	for in, want := range cases {
		got, err := successor.ParseDiscipline(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := successor.ParseDiscipline("random")
	assert.ErrorIs(t, err, network.ErrInvalidParameter)

	assert.Equal(t, "synchronous", successor.Synchronous.String())
	assert.Equal(t, "asynchronous", successor.Asynchronous.String())
	assert.Equal(t, "Discipline(7)", successor.Discipline(7).String())
	assert.False(t, successor.Discipline(0).Valid())
}

// TestSynchronous_Deterministic checks one successor per state, computed from
// the same input for every node, and purity across calls.
func TestSynchronous_Deterministic(t *testing.T) {
	net := networktest.Feedback4()
	states, err := net.AllStates()
	require.NoError(t, err)

	for _, s := range states {
		first, err := successor.Successors(net, s, successor.Synchronous)
		require.NoError(t, err)
		require.Len(t, first, 1)
		again, err := successor.Successors(net, s, successor.Synchronous)
		require.NoError(t, err)
		assert.Equal(t, first, again, "synchronous successor must be a pure function of %s", s)

		a, b, c := s.Get(0), s.Get(1), s.Get(2)
		want := network.NewState([]bool{a, a && !c, b, b || c})
		assert.Equal(t, want, first[0], "from %s", s)

		single, err := successor.Sync(net, s)
		require.NoError(t, err)
		assert.Equal(t, first[0], single)
	}
}

// TestAsynchronous_SingleFlips checks that each asynchronous successor differs
// in exactly one coordinate and that there are at most n of them.
func TestAsynchronous_SingleFlips(t *testing.T) {
	net := networktest.Feedback4()
	states, err := net.AllStates()
	require.NoError(t, err)

	for _, s := range states {
		succ, err := successor.Successors(net, s, successor.Asynchronous)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(succ), net.Len())
		for _, n := range succ {
			assert.Equal(t, 1, s.Differences(n), "%s -> %s", s, n)
		}

		sync, _ := successor.Sync(net, s)
		assert.Equal(t, s.Differences(sync), len(succ),
			"one asynchronous successor per coordinate the synchronous rule changes")
	}
}

// TestAsynchronous_Order checks node order of the generated successors.
func TestAsynchronous_Order(t *testing.T) {
	net := networktest.Toggle()
	s, _ := network.ParseState("00")
	succ, err := successor.Async(net, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "01"}, []string{succ[0].String(), succ[1].String()})
}

// TestAsynchronous_Steady checks the empty successor set of a steady state.
func TestAsynchronous_Steady(t *testing.T) {
	net := networktest.Identity()
	for _, raw := range []string{"0", "1"} {
		s, _ := network.ParseState(raw)
		succ, err := successor.Successors(net, s, successor.Asynchronous)
		require.NoError(t, err)
		assert.Empty(t, succ)

		steady, err := successor.IsSteady(net, s)
		require.NoError(t, err)
		assert.True(t, steady)
	}

	osc, _ := network.ParseState("0")
	steady, err := successor.IsSteady(networktest.Oscillator(), osc)
	require.NoError(t, err)
	assert.False(t, steady)
}

// TestSuccessors_Errors covers invalid disciplines and malformed logic.
func TestSuccessors_Errors(t *testing.T) {
	net := networktest.Identity()
	s, _ := network.ParseState("1")

	_, err := successor.Successors(net, s, successor.Discipline(0))
	assert.ErrorIs(t, err, network.ErrInvalidParameter)
	_, err = successor.For(successor.Discipline(42))
	assert.ErrorIs(t, err, network.ErrInvalidParameter)

	bad := networktest.Inconsistent()
	for _, d := range []successor.Discipline{successor.Synchronous, successor.Asynchronous} {
		_, err = successor.Successors(bad, s, d)
		assert.ErrorIs(t, err, network.ErrInconsistentLogic, d.String())
		_, err = successor.IsSteady(bad, s)
		assert.ErrorIs(t, err, network.ErrInconsistentLogic)
	}

	wrong, _ := network.ParseState("10")
	_, err = successor.Successors(net, wrong, successor.Synchronous)
	assert.ErrorIs(t, err, network.ErrInvalidParameter)
}
