// Package boolprob estimates how the activation probabilities of the nodes of
// a Boolean network evolve over time.
//
// A network is given by the prime implicants of every node's update function.
// Starting from a uniformly random initial state, boolprob reports for each
// node n and step t the probability P(n is 1 at t), under synchronous update
// (all nodes at once) or asynchronous update (one uniformly chosen node that
// can change does).
//
// Three estimators share one output type, series.Series:
//
//	exact/      weighted enumeration of every trajectory (small networks)
//	montecarlo/ independent random trajectories, parallel and seeded
//	meanfield/  independent Boolean mean-field approximation (IBMFA)
//
// Supporting packages:
//
//	network/    node ordering, states, implicant evaluation, sentinel errors
//	successor/  synchronous and asynchronous successor generation
//	series/     probability series, comparison, entropy, JSON/YAML records
//	modelfile/  YAML/JSON prime-implicant model files
//
// Quick example (B' = A, A' = A):
//
//	s, _ := exact.Enumerate(net, successor.Synchronous, 4)
//	fmt.Println(s.Values["B"]) // [0.5 0.5 0.5 0.5]
//
// The boolprob command in cmd/boolprob wraps all estimators:
//
//	boolprob compare model.yaml --steps 20 --trials 50000 --workers 8
package boolprob
