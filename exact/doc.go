// Package exact computes the marginal activation probabilities of a Boolean
// network without sampling error, by breadth-first expansion of the whole
// state distribution.
//
// What
//
//   - Generation 0 is every full assignment, each with weight 2^-n: the
//     uniform prior over initial conditions.
//   - Generation t+1 replaces every entry (s, w) of generation t by the
//     successors of s, each weighted w/k for k successors. This reproduces
//     exactly a uniformly random choice at every asynchronous branch point.
//     A steady state keeps its entry unchanged.
//   - The marginal of node i at step t is the weight of entries with i = 1
//     over the total weight of generation t.
//
// Why
//
//	The result is the exact expectation of the Monte Carlo estimator in
//	package montecarlo, so it serves as a correctness oracle for it and for
//	the mean-field approximation in package meanfield. It is not a
//	production tool: without merging, generations grow by the branching
//	factor every step.
//
// Options
//
//   - WithWorkers(k): split each generation into k contiguous chunks
//     expanded concurrently. Chunks are concatenated in order, so the output
//     is bit-for-bit identical for every k. Generations stay in lockstep.
//   - WithMergeDuplicates(): collapse equal states, summing their weights.
//     Marginals are unchanged (up to floating-point summation order) and a
//     generation never exceeds 2^n entries.
//   - WithPathCounting(): give each successor its parent's full weight, so
//     marginals are fractions of trajectories. Asynchronous results then
//     over-represent states with many successors and no longer match
//     package montecarlo.
//   - WithMaxEntries(m): fail with ErrStateExplosion instead of growing past m.
//   - WithContext(ctx): cancellation between generations and entries.
//
// Determinism
//
//	No randomness. Identical inputs give identical output.
//
// Usage
//
//	s, err := exact.Enumerate(net, successor.Asynchronous, 10,
//		exact.WithWorkers(4), exact.WithMergeDuplicates())
package exact
