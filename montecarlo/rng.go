// Package montecarlo - RNG utilities for trial workers.
//
// Goals:
//   - Determinism: same seed and worker count ⇒ identical estimates.
//   - Independence: every worker owns its stream; no *rand.Rand is shared
//     across goroutines (math/rand.Rand is NOT goroutine-safe).
//   - No time-based sources hidden anywhere.
package montecarlo

import (
	"math/rand"

	"github.com/katalvlaran/boolprob/network"
)

// defaultSeed is the fixed seed used when callers pass seed==0.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultSeed; otherwise the seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier into a new seed
// with a SplitMix64 finalizer, so neighbouring stream ids yield unrelated
// sequences.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// workerStreams derives one RNG per worker from base. base.Int63 is drawn
// once, on the calling goroutine, before any worker starts.
func workerStreams(base *rand.Rand, workers int) []*rand.Rand {
	parent := base.Int63()
	out := make([]*rand.Rand, workers)
	for w := range out {
		out[w] = rand.New(rand.NewSource(deriveSeed(parent, uint64(w))))
	}
	return out
}

// randomState draws a full assignment of n nodes uniformly: every bit is an
// independent fair coin. Bits are taken 63 at a time from Int63.
func randomState(rng *rand.Rand, n int, buf []bool) network.State {
	var word int64
	left := 0
	for i := 0; i < n; i++ {
		if left == 0 {
			word, left = rng.Int63(), 63
		}
		buf[i] = word&1 == 1
		word >>= 1
		left--
	}
	return network.NewState(buf[:n])
}
