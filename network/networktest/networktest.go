// Package networktest provides small reference networks for tests and
// examples across boolprob.
package networktest

import "github.com/katalvlaran/boolprob/network"

func lit(name string, v bool) network.Assignment { return network.Assignment{name: v} }

// mustNew builds a network or panics; fixtures are static and known-good.
func mustNew(p map[string]network.Primes) *network.Network {
	net, err := network.New(p)
	if err != nil {
		panic(err)
	}
	return net
}

// Identity is the single node X with rule X' = X.
func Identity() *network.Network {
	return mustNew(map[string]network.Primes{
		"X": {Positive: []network.Assignment{lit("X", true)}, Negative: []network.Assignment{lit("X", false)}},
	})
}

// Oscillator is the single node X with rule X' = !X.
func Oscillator() *network.Network {
	return mustNew(map[string]network.Primes{
		"X": {Positive: []network.Assignment{lit("X", false)}, Negative: []network.Assignment{lit("X", true)}},
	})
}

// Driver is A' = A, B' = A.
func Driver() *network.Network {
	return mustNew(map[string]network.Primes{
		"A": {Positive: []network.Assignment{lit("A", true)}, Negative: []network.Assignment{lit("A", false)}},
		"B": {Positive: []network.Assignment{lit("A", true)}, Negative: []network.Assignment{lit("A", false)}},
	})
}

// Feedback is a three node loop with an input:
//
//	A' = A
//	B' = A & !C
//	C' = B
func Feedback() *network.Network {
	return mustNew(map[string]network.Primes{
		"A": {Positive: []network.Assignment{lit("A", true)}, Negative: []network.Assignment{lit("A", false)}},
		"B": {
			Positive: []network.Assignment{{"A": true, "C": false}},
			Negative: []network.Assignment{lit("A", false), lit("C", true)},
		},
		"C": {Positive: []network.Assignment{lit("B", true)}, Negative: []network.Assignment{lit("B", false)}},
	})
}

// Feedback4 extends Feedback with D' = B | C.
func Feedback4() *network.Network {
	return mustNew(map[string]network.Primes{
		"A": {Positive: []network.Assignment{lit("A", true)}, Negative: []network.Assignment{lit("A", false)}},
		"B": {
			Positive: []network.Assignment{{"A": true, "C": false}},
			Negative: []network.Assignment{lit("A", false), lit("C", true)},
		},
		"C": {Positive: []network.Assignment{lit("B", true)}, Negative: []network.Assignment{lit("B", false)}},
		"D": {
			Positive: []network.Assignment{lit("B", true), lit("C", true)},
			Negative: []network.Assignment{{"B": false, "C": false}},
		},
	})
}

// Toggle is the mutual-inhibition switch A' = !B, B' = !A.
func Toggle() *network.Network {
	return mustNew(map[string]network.Primes{
		"A": {Positive: []network.Assignment{lit("B", false)}, Negative: []network.Assignment{lit("B", true)}},
		"B": {Positive: []network.Assignment{lit("A", false)}, Negative: []network.Assignment{lit("A", true)}},
	})
}

// Inconsistent is A with positive {A:1} and negative {A:1}: in A=1 both
// lists match, in A=0 neither does.
func Inconsistent() *network.Network {
	return mustNew(map[string]network.Primes{
		"A": {Positive: []network.Assignment{lit("A", true)}, Negative: []network.Assignment{lit("A", true)}},
	})
}
