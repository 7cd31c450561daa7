package exprdoc

import (
	"github.com/bollu/Wheeler/internal/expr"
)

// FromExpr renders an expression tree back into its document form. The
// result round-trips through Build up to flattening-constructor collapse
// (a one-term sum decodes to the term itself).
func FromExpr(e expr.Expr) Node {
	switch n := e.(type) {
	case *expr.Sum:
		terms := make([]Node, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = FromExpr(t)
		}
		return Node{Kind: KindSum, Terms: terms}
	case *expr.Product:
		factors := make([]Node, len(n.Factors))
		for i, f := range n.Factors {
			factors[i] = FromExpr(f)
		}
		return Node{Kind: KindProduct, Factors: factors}
	case *expr.Power:
		base := FromExpr(n.Base)
		exp := FromExpr(n.Exponent)
		return Node{Kind: KindPower, Base: &base, Exponent: &exp}
	case *expr.Symbol:
		return Node{Kind: KindSymbol, Name: n.Name, Note: n.Note}
	case *expr.TensorSymbol:
		return Node{Kind: KindTensor, Name: n.Name, Space: n.Space, Indices: n.Indices, Note: n.Note}
	case *expr.SpinorSymbol:
		return Node{Kind: KindSpinor, Name: n.Name, Space: n.Space, Note: n.Note}
	case *expr.Const:
		return Node{Kind: KindConst, Value: n.String()}
	case *expr.PatternVar:
		return Node{Kind: KindVar, Name: n.Name}
	default:
		return Node{}
	}
}
