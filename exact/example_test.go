package exact_test

import (
	"fmt"

	"github.com/katalvlaran/boolprob/exact"
	"github.com/katalvlaran/boolprob/network/networktest"
	"github.com/katalvlaran/boolprob/successor"
)

// ExampleEnumerate runs the exact oracle on a three-node feedback loop
// (A' = A, B' = A & !C, C' = B) under synchronous update.
func ExampleEnumerate() {
	s, err := exact.Enumerate(networktest.Feedback(), successor.Synchronous, 4)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, n := range s.Nodes {
		fmt.Println(n, s.Values[n])
	}

	// Output:
	// A [0.5 0.5 0.5 0.5]
	// B [0.5 0.25 0.25 0.25]
	// C [0.5 0.5 0.25 0.25]
}
