// Package expr defines the expression tree all Wheeler algorithms traverse.
//
// An expression is a closed tagged tree: sums, products, powers, and leaves
// (plain, tensor and spinor symbols, exact rational constants, and pattern
// variables). The variant set is sealed - every Expr is one of the types in
// this package and dispatch is by exhaustive type switch.
//
// STRUCTURAL PRECONDITIONS:
//
// Sum and Product nodes are always stored fully flattened: a Sum never
// directly contains a Sum, a Product never directly contains a Product.
// The constructors in build.go enforce this; trees built by hand must
// satisfy it too. The matcher assumes the invariant and does not
// re-flatten - Validate reports violations as StructureErrors.
//
// Product factors carry a representation-space tag (SpaceOf). Factors that
// share a non-empty tag do not commute: their relative order is
// semantically significant. Factors with the empty tag commute freely.
//
// Leaf comparison goes through the Matchable capability rather than raw
// structural equality, so annotation metadata (Note fields) never breaks
// otherwise-identical leaves.
package expr
