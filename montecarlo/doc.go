// Package montecarlo estimates marginal activation probabilities of a
// Boolean network by simulating random trajectories.
//
// What
//
//   - Every trial draws a uniformly random initial state, then follows a
//     random trajectory: at each step one successor (package successor) is
//     picked uniformly. A steady state keeps the trajectory where it is.
//   - Per node and step, the number of trials with the node active is
//     counted; dividing by the number of trials gives the estimate.
//
// The estimator is unbiased and consistent for the marginals computed by
// package exact, with sampling error O(1/√trials).
//
// Concurrency
//
//	Trials are independent. WithWorkers(k) splits them into k contiguous
//	blocks, each run by its own goroutine with its own RNG stream derived
//	from the base seed (SplitMix64 mix of the seed and the worker index).
//	Counters are integers and are summed after all workers finish, so the
//	merge order cannot affect the result.
//
// Determinism
//
//	For a fixed seed (or base *rand.Rand state) and worker count, Simulate
//	returns identical output on every run. Changing the worker count changes
//	the streams and so the sample.
//
// Usage
//
//	s, err := montecarlo.Simulate(net, successor.Asynchronous, 10, 5000,
//		montecarlo.WithSeed(42), montecarlo.WithWorkers(runtime.NumCPU()))
package montecarlo
