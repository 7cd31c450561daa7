// Package rewrite applies pattern-rewrite rules on top of the matching
// engine. A rule pairs a pattern with a replacement template; applying it
// substitutes the match's variable bindings into the template and splices
// the result in at the match location.
//
// A partial sum or product match (unconsumed terms or factors at the
// anchor) replaces only the consumed children and keeps the rest, so
// `a + c` rewritten by `a -> b` inside `a + b + c` leaves `b + c` intact.
//
// The fixed-point driver re-applies the rule list until nothing matches,
// bounded by a pass quota so a non-terminating rule set fails loudly
// instead of spinning.
package rewrite
