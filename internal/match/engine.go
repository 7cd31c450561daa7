package match

import (
	"github.com/bollu/Wheeler/internal/expr"
)

// tryMatch attempts to match pattern against subject rooted at the given
// subject path, mutating ctx on the way. It returns false on mismatch and
// may leave partial state in ctx; callers exploring alternatives snapshot
// and restore around the call.
func tryMatch(pattern, subject expr.Expr, at expr.Path, ctx *Context) bool {
	return matchNode(pattern, subject, at, false, ctx)
}

// matchNode is the dispatch core. inPower is set while matching inside a
// Power operand: operands are not separately addressable, so no selector
// is appended below the power's path, and sum/product matching must
// consume the subject lists exactly — a partial match there could neither
// be reported by path nor spliced by the rewrite layer.
func matchNode(pattern, subject expr.Expr, at expr.Path, inPower bool, ctx *Context) bool {
	switch p := pattern.(type) {
	case *expr.PatternVar:
		if !ctx.Bind(p.Name, subject) {
			return false
		}
		ctx.Visit(at)
		return true

	case *expr.Sum:
		s, ok := subject.(*expr.Sum)
		if !ok {
			return false
		}
		if !matchUnordered(p.Terms, indexed(s.Terms), at, expr.Term, inPower, ctx) {
			return false
		}
		ctx.Visit(at)
		return true

	case *expr.Product:
		s, ok := subject.(*expr.Product)
		if !ok {
			return false
		}
		if !matchProduct(p, s, at, inPower, ctx) {
			return false
		}
		ctx.Visit(at)
		return true

	case *expr.Power:
		s, ok := subject.(*expr.Power)
		if !ok {
			return false
		}
		// Power operands share the power node's address, so both sides
		// recurse at the same path.
		save := ctx.Save()
		if !matchNode(p.Base, s.Base, at, true, ctx) {
			ctx.Restore(save)
			return false
		}
		if !matchNode(p.Exponent, s.Exponent, at, true, ctx) {
			ctx.Restore(save)
			return false
		}
		ctx.Visit(at)
		return true

	case expr.Matchable:
		if !p.Matches(subject) {
			return false
		}
		ctx.Visit(at)
		return true

	default:
		return false
	}
}

// element is a subject list entry that remembers its child index in the
// original node, so consumed elements report the right path even after
// grouping or partitioning.
type element struct {
	index int
	expr  expr.Expr
}

func indexed(es []expr.Expr) []element {
	out := make([]element, len(es))
	for i, e := range es {
		out[i] = element{index: i, expr: e}
	}
	return out
}

// matchUnordered matches a commuting pattern list against a subject list:
// each pattern element consumes the first unconsumed subject element it
// matches; a pattern element with no consumer fails the whole list.
// Unconsumed subject elements are allowed, except inside a Power operand
// where every subject element must be consumed.
//
// Explicit (variable-free) pattern elements are tried before
// variable-containing ones, so a free variable cannot greedily consume a
// subject element an explicit element needed. Within each class, original
// order is kept for determinism.
//
// sel maps a subject child index to its path selector (sum term or
// product factor).
func matchUnordered(pattern []expr.Expr, subject []element, at expr.Path, sel func(int) expr.Selector, inPower bool, ctx *Context) bool {
	ordered := make([]expr.Expr, 0, len(pattern))
	for _, p := range pattern {
		if !expr.ContainsPattern(p) {
			ordered = append(ordered, p)
		}
	}
	for _, p := range pattern {
		if expr.ContainsPattern(p) {
			ordered = append(ordered, p)
		}
	}

	used := make([]bool, len(subject))
	for _, p := range ordered {
		consumed := false
		for i, s := range subject {
			if used[i] {
				continue
			}
			childAt := at
			if !inPower {
				childAt = at.Append(sel(s.index))
			}
			save := ctx.Save()
			if matchNode(p, s.expr, childAt, inPower, ctx) {
				used[i] = true
				consumed = true
				break
			}
			ctx.Restore(save)
		}
		if !consumed {
			return false
		}
	}
	if inPower {
		for _, u := range used {
			if !u {
				return false
			}
		}
	}
	return true
}

// matchProduct matches two products by representation-space group. The
// commuting (empty-tag) pattern group matches the commuting subject group
// unordered; every tagged pattern group must match a contiguous window of
// the identically-tagged subject group. Subject groups with no
// corresponding pattern group are unconstrained — except inside a Power
// operand, where every subject factor must be consumed.
func matchProduct(pattern, subject *expr.Product, at expr.Path, inPower bool, ctx *Context) bool {
	pCommuting, pTagged, pOrder := groupFactors(pattern.Factors)
	sCommuting, sTagged, sOrder := groupFactors(subject.Factors)

	if inPower {
		if len(pCommuting) != len(sCommuting) {
			return false
		}
		if len(pOrder) != len(sOrder) {
			return false
		}
	}

	if len(pCommuting) > 0 {
		if len(sCommuting) == 0 {
			return false
		}
		pat := make([]expr.Expr, len(pCommuting))
		for i, e := range pCommuting {
			pat[i] = e.expr
		}
		if !matchUnordered(pat, sCommuting, at, expr.Factor, inPower, ctx) {
			return false
		}
	}

	for _, tag := range pOrder {
		group := sTagged[tag]
		if len(group) == 0 {
			return false
		}
		if !matchWindow(pTagged[tag], group, at, inPower, ctx) {
			return false
		}
	}
	return true
}

// groupFactors partitions product factors by representation-space tag,
// preserving relative order within each group. order lists the non-empty
// tags by first appearance.
func groupFactors(factors []expr.Expr) (commuting []element, tagged map[string][]element, order []string) {
	tagged = make(map[string][]element)
	for i, f := range factors {
		e := element{index: i, expr: f}
		tag := expr.SpaceOf(f)
		if tag == "" {
			commuting = append(commuting, e)
			continue
		}
		if _, seen := tagged[tag]; !seen {
			order = append(order, tag)
		}
		tagged[tag] = append(tagged[tag], e)
	}
	return commuting, tagged, order
}

// matchWindow slides the pattern group across the subject group and
// requires every pattern element to match at the same relative offset, in
// order. The leftmost matching window wins; the context is restored
// between failed offsets. Inside a Power operand the window must be the
// whole subject group.
func matchWindow(pattern []element, subject []element, at expr.Path, inPower bool, ctx *Context) bool {
	if len(pattern) == 0 {
		return true
	}
	if len(pattern) > len(subject) {
		return false
	}
	if inPower && len(pattern) != len(subject) {
		return false
	}
	for off := 0; off+len(pattern) <= len(subject); off++ {
		save := ctx.Save()
		ok := true
		for k, p := range pattern {
			s := subject[off+k]
			childAt := at
			if !inPower {
				childAt = at.Append(expr.Factor(s.index))
			}
			if !matchNode(p.expr, s.expr, childAt, inPower, ctx) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
		ctx.Restore(save)
	}
	return false
}
