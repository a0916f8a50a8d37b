package montecarlo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRNGFromSeed_ZeroPolicy checks that seed 0 maps to the default stream.
func TestRNGFromSeed_ZeroPolicy(t *testing.T) {
	a, b := rngFromSeed(0), rngFromSeed(defaultSeed)
	for i := 0; i < 8; i++ {
		assert.Equal(t, b.Int63(), a.Int63())
	}
}

// TestDeriveSeed_Distinct checks that neighbouring streams get unrelated seeds.
func TestDeriveSeed_Distinct(t *testing.T) {
	seen := make(map[int64]bool)
	for s := uint64(0); s < 1000; s++ {
		v := deriveSeed(7, s)
		assert.False(t, seen[v], "stream %d collides", s)
		seen[v] = true
	}
	assert.Equal(t, deriveSeed(7, 3), deriveSeed(7, 3))
	assert.NotEqual(t, deriveSeed(7, 3), deriveSeed(8, 3))
}

// TestWorkerStreams_Deterministic checks same base ⇒ same worker sequences.
func TestWorkerStreams_Deterministic(t *testing.T) {
	a := workerStreams(rand.New(rand.NewSource(5)), 3)
	b := workerStreams(rand.New(rand.NewSource(5)), 3)
	for w := range a {
		assert.Equal(t, a[w].Int63(), b[w].Int63(), "worker %d", w)
	}
	assert.NotEqual(t, a[0].Int63(), a[1].Int63())
}

// TestRandomState_Uniform checks that every bit, including those past the
// first 63, is a fair coin.
func TestRandomState_Uniform(t *testing.T) {
	const n, draws = 130, 20000
	rng := rngFromSeed(11)
	buf := make([]bool, n)
	ones := make([]int, n)
	for k := 0; k < draws; k++ {
		s := randomState(rng, n, buf)
		assert.Equal(t, n, s.Len())
		for i := 0; i < n; i++ {
			if s.Get(i) {
				ones[i]++
			}
		}
	}
	for i, c := range ones {
		p := float64(c) / draws
		assert.Less(t, math.Abs(p-0.5), 0.03, "bit %d frequency %v", i, p)
	}
}
