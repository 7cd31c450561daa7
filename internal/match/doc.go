// Package match implements Wheeler's pattern-matching engine: locating
// every place a pattern expression structurally matches inside a subject
// expression, under the algebra's equivalence rules.
//
// ALGORITHM:
//
// The top-level query enumerates every sub-expression of the subject in
// pre-order and runs one fresh match attempt per candidate anchor. An
// attempt threads an explicit Context (variable bindings + visited paths)
// through the recursive engine; every alternative the engine explores is
// bracketed by a Context snapshot/restore, which simulates backtracking
// without corrupting sibling branches.
//
// Dispatch is by the pair of root shapes:
//   - Sum vs Sum: unordered matching. Explicit (variable-free) pattern
//     terms are tried before variable-containing ones so a free variable
//     never greedily consumes a subject term an explicit term needed.
//     Unconsumed subject terms are allowed (subset semantics).
//   - Product vs Product: factors are grouped by representation-space tag.
//     The empty-tag (commuting) group matches unordered like a sum; each
//     non-empty tag group must match a contiguous, in-order window of the
//     identically-tagged subject group, leftmost window first.
//   - Pattern variable vs anything: bind. A repeated variable only matches
//     a sub-expression structurally equal to its existing binding.
//   - Leaf vs leaf: compare through the expr.Matchable capability.
//
// Match failure is an ordinary boolean outcome, never an error. Errors are
// reserved for structural precondition violations by the caller
// (un-flattened trees, pattern variables inside subjects), which fail fast
// at the entry points.
//
// The engine is single-threaded and purely algorithmic. Enumeration over
// anchors is embarrassingly parallel, but each attempt owns its Context.
package match
