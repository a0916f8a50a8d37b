// Package series defines the probability series, the only output type of
// the boolprob estimators: node → ordered marginal activation probabilities
// p[0..T-1].
//
// A Series is created fresh by each estimator run and owned by the caller.
// It serializes to the record consumed by plotting scripts:
//
//	{"state_variables": ["A", "B"], "simulation": {"A": [0.5, ...], "B": [...]}}
//
// Helpers compare two series (MaxAbsDiff), validate ranges and compute the
// mean binary entropy of a step, a compact measure of how undecided the
// network still is.
package series
