package expr

import (
	"math/big"
)

// Expr is the sealed interface over all expression variants.
// Only the types in this package implement it.
type Expr interface {
	// String renders the expression in flat algebraic notation.
	String() string

	exprNode() // Sealed - only expr types implement it.
}

// Matchable is the leaf comparison capability used by the matcher in place
// of raw structural equality. Implementations must ignore annotation
// metadata (Note fields) and compare only match-relevant identity.
type Matchable interface {
	// Matches reports whether other is a leaf of the same kind with the
	// same match-relevant identity.
	Matches(other Expr) bool
}

// Sum is a flattened, commutative sum of terms. Term order is preserved
// structurally but carries no semantic weight.
type Sum struct {
	Terms []Expr
}

func (*Sum) exprNode() {}

// Product is a flattened product of factors. Factors sharing a non-empty
// representation-space tag (SpaceOf) must preserve relative order among
// themselves; empty-tag factors commute freely.
type Product struct {
	Factors []Expr
}

func (*Product) exprNode() {}

// Power is base raised to exponent. Its operands are not separately
// addressable: they share the power node's path.
type Power struct {
	Base     Expr
	Exponent Expr
}

func (*Power) exprNode() {}

// Symbol is a plain scalar symbol. Note is annotation metadata and is
// ignored by Matches.
type Symbol struct {
	Name string
	Note string
}

func (*Symbol) exprNode() {}

// Matches implements Matchable. Two plain symbols match by name.
func (s *Symbol) Matches(other Expr) bool {
	o, ok := other.(*Symbol)
	return ok && s.Name == o.Name
}

// TensorSymbol is an indexed symbol living in a named representation space
// (for example a tensor index space). Index order is part of its identity.
type TensorSymbol struct {
	Name    string
	Space   string
	Indices []string
	Note    string
}

func (*TensorSymbol) exprNode() {}

// Matches implements Matchable. Tensor symbols match by name, space, and
// the exact index sequence; Note is ignored.
func (t *TensorSymbol) Matches(other Expr) bool {
	o, ok := other.(*TensorSymbol)
	if !ok || t.Name != o.Name || t.Space != o.Space {
		return false
	}
	if len(t.Indices) != len(o.Indices) {
		return false
	}
	for i := range t.Indices {
		if t.Indices[i] != o.Indices[i] {
			return false
		}
	}
	return true
}

// DefaultSpinorSpace tags spinor symbols that do not name their own space.
const DefaultSpinorSpace = "spinor"

// SpinorSymbol is a symbol in a spinor representation space. Spinor
// factors never commute within their space.
type SpinorSymbol struct {
	Name  string
	Space string
	Note  string
}

func (*SpinorSymbol) exprNode() {}

// Matches implements Matchable. Spinor symbols match by name and space.
func (s *SpinorSymbol) Matches(other Expr) bool {
	o, ok := other.(*SpinorSymbol)
	return ok && s.Name == o.Name && s.space() == o.space()
}

func (s *SpinorSymbol) space() string {
	if s.Space == "" {
		return DefaultSpinorSpace
	}
	return s.Space
}

// Const is an exact rational constant. No floats exist in the model.
type Const struct {
	Value *big.Rat
}

func (*Const) exprNode() {}

// Matches implements Matchable. Constants match by exact value.
func (c *Const) Matches(other Expr) bool {
	o, ok := other.(*Const)
	return ok && c.Value.Cmp(o.Value) == 0
}

// PatternVar is a pattern-only leaf. It matches any sub-expression and
// records the binding. Two pattern variables are the same variable exactly
// when their names are equal within one pattern; distinct variables are
// never equal, even when bound to equal values.
type PatternVar struct {
	Name string
}

func (*PatternVar) exprNode() {}

// SpaceOf returns the representation-space tag of a product factor.
// The empty tag means the factor commutes freely. The function is total
// over every expression variant.
func SpaceOf(e Expr) string {
	switch f := e.(type) {
	case *TensorSymbol:
		return f.Space
	case *SpinorSymbol:
		return f.space()
	default:
		return ""
	}
}

// Equal reports structural equality of two expressions: same shape, same
// child order, leaves compared through Matchable. Pattern variables are
// equal only to the same-named pattern variable. Equal is order-sensitive
// for Sum and Product - it does not apply commutativity (that is the
// matcher's job).
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Sum:
		y, ok := b.(*Sum)
		if !ok || len(x.Terms) != len(y.Terms) {
			return false
		}
		for i := range x.Terms {
			if !Equal(x.Terms[i], y.Terms[i]) {
				return false
			}
		}
		return true
	case *Product:
		y, ok := b.(*Product)
		if !ok || len(x.Factors) != len(y.Factors) {
			return false
		}
		for i := range x.Factors {
			if !Equal(x.Factors[i], y.Factors[i]) {
				return false
			}
		}
		return true
	case *Power:
		y, ok := b.(*Power)
		return ok && Equal(x.Base, y.Base) && Equal(x.Exponent, y.Exponent)
	case *PatternVar:
		y, ok := b.(*PatternVar)
		return ok && x.Name == y.Name
	case Matchable:
		return x.Matches(b)
	default:
		return false
	}
}

// ContainsPattern reports whether e contains a pattern variable anywhere.
// The matcher uses it to order sum terms (explicit before variable) and
// the entry points use it to reject pattern variables in subjects.
func ContainsPattern(e Expr) bool {
	switch n := e.(type) {
	case *PatternVar:
		return true
	case *Sum:
		for _, t := range n.Terms {
			if ContainsPattern(t) {
				return true
			}
		}
	case *Product:
		for _, f := range n.Factors {
			if ContainsPattern(f) {
				return true
			}
		}
	case *Power:
		return ContainsPattern(n.Base) || ContainsPattern(n.Exponent)
	}
	return false
}
