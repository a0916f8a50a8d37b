// Package successor generates the one-step successors of a network state
// under a chosen update discipline.
//
//   - Synchronous: every node reads the same input state and updates at once;
//     there is exactly one successor.
//   - Asynchronous: one successor per node whose own rule would flip it, each
//     differing from the input in exactly that coordinate. A steady state has
//     no successor at all; callers decide what that means (the estimators in
//     boolprob keep the trajectory in place).
//
// All functions are pure: identical inputs give identical outputs and no
// state is kept between calls.
package successor
