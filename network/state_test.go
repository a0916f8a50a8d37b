package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolprob/network"
)

// TestState_ValueSemantics checks comparison, hashing and immutability.
func TestState_ValueSemantics(t *testing.T) {
	a := network.NewState([]bool{true, false, true})
	b, err := network.ParseState("101")
	require.NoError(t, err)

	assert.True(t, a == b, "equal assignments must compare equal")
	seen := map[network.State]int{a: 1}
	assert.Equal(t, 1, seen[b], "equal states must hash alike")

	c := a.With(1, true)
	assert.Equal(t, "111", c.String())
	assert.Equal(t, "101", a.String(), "With must not alias the receiver")
	assert.Equal(t, a, a.With(0, true), "setting an equal value returns the same state")

	bits := a.Bits()
	bits[0] = false
	assert.True(t, a.Get(0), "Bits must return a copy")
}

// TestState_Counting covers Ones, Len and Differences.
func TestState_Counting(t *testing.T) {
	s, _ := network.ParseState("0110")
	o, _ := network.ParseState("1111")
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 2, s.Ones())
	assert.Equal(t, 2, s.Differences(o))
	assert.Equal(t, 0, s.Differences(s))

	short, _ := network.ParseState("01")
	assert.Equal(t, 2, s.Differences(short))
	assert.Equal(t, 2, short.Differences(s))
}

// TestParseState_Invalid rejects characters other than 0 and 1.
func TestParseState_Invalid(t *testing.T) {
	_, err := network.ParseState("01x")
	assert.ErrorIs(t, err, network.ErrInvalidParameter)

	empty, err := network.ParseState("")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, network.State{}, empty)
}
