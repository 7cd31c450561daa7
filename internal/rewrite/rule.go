package rewrite

import (
	"fmt"

	"github.com/bollu/Wheeler/internal/expr"
	"github.com/bollu/Wheeler/internal/match"
)

// Rule is one rewrite rule: wherever Pattern matches, it is replaced by
// Replacement with the match's bindings substituted in. Every pattern
// variable in Replacement must also occur in Pattern.
type Rule struct {
	Name        string
	Pattern     expr.Expr
	Replacement expr.Expr
}

// UnboundVarError reports a replacement-template variable that the
// pattern never bound.
type UnboundVarError struct {
	Rule string
	Var  string
}

func (e *UnboundVarError) Error() string {
	return fmt.Sprintf("rule %q: replacement variable $%s is not bound by the pattern", e.Rule, e.Var)
}

// Apply rewrites the first match of the rule in the subject (first
// successful anchor in pre-order). The second return is false when the
// pattern matches nowhere; the subject is returned unchanged.
func (r Rule) Apply(subject expr.Expr) (expr.Expr, bool, error) {
	reports, err := match.FindAll(r.Pattern, subject)
	if err != nil {
		return nil, false, fmt.Errorf("rule %q: %w", r.Name, err)
	}
	if len(reports) == 0 {
		return subject, false, nil
	}
	rewritten, err := r.splice(subject, &reports[0])
	if err != nil {
		return nil, false, err
	}
	return rewritten, true, nil
}

// splice substitutes the report's bindings into the replacement template
// and grafts the result in at the report's anchor.
func (r Rule) splice(subject expr.Expr, rep *match.Report) (expr.Expr, error) {
	replacement, err := Substitute(r.Replacement, rep.Bindings)
	if err != nil {
		if ub, ok := err.(*UnboundVarError); ok {
			ub.Rule = r.Name
		}
		return nil, err
	}
	return replaceMatch(subject, rep, replacement)
}

// Substitute deep-copies a template, replacing every pattern variable by
// its binding. Sums and products are rebuilt through the flattening
// constructors so a composite binding spliced into a composite template
// still satisfies the structural invariant.
func Substitute(template expr.Expr, bindings map[string]expr.Expr) (expr.Expr, error) {
	switch t := template.(type) {
	case *expr.PatternVar:
		bound, ok := bindings[t.Name]
		if !ok {
			return nil, &UnboundVarError{Var: t.Name}
		}
		return bound, nil
	case *expr.Sum:
		terms := make([]expr.Expr, len(t.Terms))
		for i, term := range t.Terms {
			sub, err := Substitute(term, bindings)
			if err != nil {
				return nil, err
			}
			terms[i] = sub
		}
		return expr.NewSum(terms...), nil
	case *expr.Product:
		factors := make([]expr.Expr, len(t.Factors))
		for i, f := range t.Factors {
			sub, err := Substitute(f, bindings)
			if err != nil {
				return nil, err
			}
			factors[i] = sub
		}
		return expr.NewProduct(factors...), nil
	case *expr.Power:
		base, err := Substitute(t.Base, bindings)
		if err != nil {
			return nil, err
		}
		exp, err := Substitute(t.Exponent, bindings)
		if err != nil {
			return nil, err
		}
		return expr.NewPower(base, exp), nil
	default:
		return template, nil
	}
}

// replaceMatch grafts replacement in at the report's anchor. When the
// anchor is a sum or product and the match consumed only some of its
// children, the unconsumed children survive and the replacement joins
// them; otherwise the whole anchor node is replaced.
func replaceMatch(root expr.Expr, rep *match.Report, replacement expr.Expr) (expr.Expr, error) {
	anchor, err := expr.Resolve(root, rep.Anchor)
	if err != nil {
		return nil, err
	}

	grafted := replacement
	switch n := anchor.(type) {
	case *expr.Sum:
		kept := unconsumed(n.Terms, rep, rep.Anchor, expr.Term)
		if len(kept) > 0 && len(kept) < len(n.Terms) {
			grafted = expr.NewSum(append(kept, replacement)...)
		}
	case *expr.Product:
		kept := unconsumed(n.Factors, rep, rep.Anchor, expr.Factor)
		if len(kept) > 0 && len(kept) < len(n.Factors) {
			grafted = expr.NewProduct(append(kept, replacement)...)
		}
	}

	return graft(root, rep.Anchor, grafted)
}

// unconsumed returns the children whose paths the report did not cover,
// in original order.
func unconsumed(children []expr.Expr, rep *match.Report, at expr.Path, sel func(int) expr.Selector) []expr.Expr {
	var kept []expr.Expr
	for i, c := range children {
		if !rep.Covers(at.Append(sel(i))) {
			kept = append(kept, c)
		}
	}
	return kept
}

// graft rebuilds the spine from root down to the path and swaps in the
// replacement node, sharing every untouched subtree.
func graft(root expr.Expr, at expr.Path, replacement expr.Expr) (expr.Expr, error) {
	if at.IsRoot() {
		return replacement, nil
	}
	head, rest := at[0], at[1:]
	switch n := root.(type) {
	case *expr.Sum:
		if head.Kind != expr.TermSelector || head.Index >= len(n.Terms) {
			return nil, &expr.StructureError{Path: at, Reason: "anchor path does not address a sum term"}
		}
		terms := make([]expr.Expr, len(n.Terms))
		copy(terms, n.Terms)
		child, err := graft(n.Terms[head.Index], rest, replacement)
		if err != nil {
			return nil, err
		}
		terms[head.Index] = child
		return expr.NewSum(terms...), nil
	case *expr.Product:
		if head.Kind != expr.FactorSelector || head.Index >= len(n.Factors) {
			return nil, &expr.StructureError{Path: at, Reason: "anchor path does not address a product factor"}
		}
		factors := make([]expr.Expr, len(n.Factors))
		copy(factors, n.Factors)
		child, err := graft(n.Factors[head.Index], rest, replacement)
		if err != nil {
			return nil, err
		}
		factors[head.Index] = child
		return expr.NewProduct(factors...), nil
	default:
		return nil, &expr.StructureError{Path: at, Reason: "anchor path descends into a leaf"}
	}
}
