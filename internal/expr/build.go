package expr

import (
	"fmt"
	"math/big"
)

// NewSum builds a flattened sum. Nested sums are spliced into the term
// list. Zero terms collapse to the constant 0, one term to the term
// itself, so the Sum flattening invariant holds by construction.
func NewSum(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if inner, ok := t.(*Sum); ok {
			flat = append(flat, inner.Terms...)
		} else {
			flat = append(flat, t)
		}
	}
	switch len(flat) {
	case 0:
		return Int(0)
	case 1:
		return flat[0]
	}
	return &Sum{Terms: flat}
}

// NewProduct builds a flattened product. Nested products are spliced into
// the factor list. Zero factors collapse to the constant 1, one factor to
// the factor itself.
func NewProduct(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	for _, f := range factors {
		if inner, ok := f.(*Product); ok {
			flat = append(flat, inner.Factors...)
		} else {
			flat = append(flat, f)
		}
	}
	switch len(flat) {
	case 0:
		return Int(1)
	case 1:
		return flat[0]
	}
	return &Product{Factors: flat}
}

// NewPower builds base^exponent.
func NewPower(base, exponent Expr) *Power {
	return &Power{Base: base, Exponent: exponent}
}

// Sym builds a plain symbol leaf.
func Sym(name string) *Symbol {
	return &Symbol{Name: name}
}

// Tensor builds a tensor symbol in the given representation space.
func Tensor(name, space string, indices ...string) *TensorSymbol {
	return &TensorSymbol{Name: name, Space: space, Indices: indices}
}

// Spinor builds a spinor symbol in the default spinor space.
func Spinor(name string) *SpinorSymbol {
	return &SpinorSymbol{Name: name}
}

// Int builds an integer constant.
func Int(n int64) *Const {
	return &Const{Value: new(big.Rat).SetInt64(n)}
}

// Rat builds an exact rational constant p/q. q must be non-zero.
func Rat(p, q int64) *Const {
	if q == 0 {
		panic("expr: zero denominator")
	}
	return &Const{Value: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// Var builds a pattern variable leaf.
func Var(name string) *PatternVar {
	return &PatternVar{Name: name}
}

// StructureError reports a violated structural precondition: an
// un-flattened tree or a pattern variable where none is allowed. These are
// programming errors in the construction layer, surfaced as errors so the
// caller fails fast instead of silently producing a wrong match.
type StructureError struct {
	Path   Path
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed expression at %s: %s", e.Path, e.Reason)
}

// Validate checks the flattening invariant over the whole tree: no Sum
// directly inside a Sum, no Product directly inside a Product, and no nil
// children. Returns a StructureError for the first violation in pre-order.
func Validate(e Expr) error {
	return validate(e, Path{})
}

// ValidateSubject checks Validate plus the subject-only rule that pattern
// variables must not appear.
func ValidateSubject(e Expr) error {
	if err := Validate(e); err != nil {
		return err
	}
	if ContainsPattern(e) {
		return &StructureError{Reason: "pattern variable in subject expression"}
	}
	return nil
}

func validate(e Expr, at Path) error {
	switch n := e.(type) {
	case nil:
		return &StructureError{Path: at, Reason: "nil expression"}
	case *Sum:
		for i, t := range n.Terms {
			child := at.Append(Term(i))
			if _, ok := t.(*Sum); ok {
				return &StructureError{Path: child, Reason: "sum directly inside sum"}
			}
			if err := validate(t, child); err != nil {
				return err
			}
		}
	case *Product:
		for i, f := range n.Factors {
			child := at.Append(Factor(i))
			if _, ok := f.(*Product); ok {
				return &StructureError{Path: child, Reason: "product directly inside product"}
			}
			if err := validate(f, child); err != nil {
				return err
			}
		}
	case *Power:
		if err := validate(n.Base, at); err != nil {
			return err
		}
		if err := validate(n.Exponent, at); err != nil {
			return err
		}
	case *Const:
		if n.Value == nil {
			return &StructureError{Path: at, Reason: "constant without value"}
		}
	}
	return nil
}
