// SPDX-License-Identifier: MIT

// Package meanfield implements the independent Boolean mean-field
// approximation (IBMFA) of node activation probabilities.
//
// Every node n is summarised by a single probability p[n][t]. The joint state
// at t-1 is assumed to be a product of independent Bernoulli variables, so
// the chance that n evaluates to 1 at t is the mass of its positive table:
// the full assignments covered by its positive prime implicants.
//
// Two recurrences are offered:
//
//   - Synchronous: p[n][t] = raw.
//   - AsynchronousBlend: p[n][t] = (raw + (N-1)·p[n][t-1]) / N, the
//     expectation when one of the N nodes, chosen uniformly, updates per step.
//
// The approximation is exact when node inputs are independent, e.g. for a
// node driven by a single constant input, and drifts from the exact marginals
// once feedback correlates the inputs.
//
// Tables are built once per call. Options.MaxTableRows guards their size;
// Options.Fixed pins selected nodes to a constant probability.
//
// FindDriverSet builds on pinning: it greedily adds the 0/1 node fix that
// most lowers the mean binary entropy of the last step, until the
// approximated state is fully determined.
package meanfield
