// Package network holds the immutable representation of a Boolean regulatory
// network shared by every estimator in boolprob.
//
// What
//
//   - Network: node names (sorted, fixed at construction) and, per node, two
//     lists of prime implicants: Positive ones force the node to 1, Negative
//     ones force it to 0.
//   - Implicant: a partial assignment compiled to a sorted slice of
//     (node index, value) literals, so matching is a short index loop.
//   - State: an immutable full assignment, comparable with == and hashable.
//   - Eval / Next / Flippable: one-node, synchronous and asynchronous
//     evaluation primitives used by package successor.
//
// Contract
//
//	For every full assignment exactly one of "some positive implicant matches"
//	and "some negative implicant matches" must hold. New does not verify this
//	(it would cost 2^n evaluations); Eval checks it for every state it meets
//	and returns a *LogicError matching ErrInconsistentLogic otherwise.
//
// Usage
//
//	net, err := network.New(map[string]network.Primes{
//		"A": {Positive: []network.Assignment{{"A": true}}, Negative: []network.Assignment{{"A": false}}},
//		"B": {Positive: []network.Assignment{{"A": true}}, Negative: []network.Assignment{{"A": false}}},
//	})
//	s, _ := network.ParseState("10") // A=1, B=0
//	next, err := net.Next(s)         // "11"
//
// Concurrency
//
//	A Network never changes after New returns and may be shared freely.
package network
