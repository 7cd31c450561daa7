package expr

import (
	"fmt"
	"strings"
)

// SelectorKind discriminates the two child-selector kinds. Only Sum terms
// and Product factors are addressable; Power operands share their parent's
// path.
type SelectorKind uint8

const (
	// TermSelector selects the i-th term of a Sum.
	TermSelector SelectorKind = iota
	// FactorSelector selects the i-th factor of a Product.
	FactorSelector
)

// Selector is one step of a breadcrumb path.
type Selector struct {
	Kind  SelectorKind
	Index int
}

// Term builds a Sum-term selector.
func Term(i int) Selector { return Selector{Kind: TermSelector, Index: i} }

// Factor builds a Product-factor selector.
func Factor(i int) Selector { return Selector{Kind: FactorSelector, Index: i} }

func (s Selector) String() string {
	if s.Kind == TermSelector {
		return fmt.Sprintf("t%d", s.Index)
	}
	return fmt.Sprintf("f%d", s.Index)
}

// Path addresses a node inside an expression tree as a sequence of child
// selectors from the root. The empty path is the root.
//
// Paths are built outer-to-inner by Append only. Append never mutates the
// receiver, so path prefixes may be shared freely across concurrent match
// attempts within one enumeration pass.
type Path []Selector

// Append returns a new path extended by one selector. The receiver is
// never mutated: the result is always freshly allocated.
func (p Path) Append(s Selector) Path {
	q := make(Path, len(p)+1)
	copy(q, p)
	q[len(p)] = s
	return q
}

// IsRoot reports whether p addresses the root node.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Equal reports structural equality of two paths.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether p is a (possibly equal) prefix of q. Not used
// by the matcher itself; the rewrite layer uses it to attribute matched
// paths to an anchor's children.
func (p Path) IsPrefixOf(q Path) bool {
	if len(p) > len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Key returns a stable string form usable as a set-membership key.
// The root key is "/".
func (p Path) Key() string { return p.String() }

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// Resolve walks p from root and returns the addressed sub-expression.
// Returns a StructureError when a selector does not fit the node shape or
// indexes out of range.
func Resolve(root Expr, p Path) (Expr, error) {
	cur := root
	for i, s := range p {
		switch n := cur.(type) {
		case *Sum:
			if s.Kind != TermSelector || s.Index < 0 || s.Index >= len(n.Terms) {
				return nil, &StructureError{Path: p[:i+1], Reason: "selector does not address a sum term"}
			}
			cur = n.Terms[s.Index]
		case *Product:
			if s.Kind != FactorSelector || s.Index < 0 || s.Index >= len(n.Factors) {
				return nil, &StructureError{Path: p[:i+1], Reason: "selector does not address a product factor"}
			}
			cur = n.Factors[s.Index]
		default:
			return nil, &StructureError{Path: p[:i+1], Reason: "selector descends into a leaf"}
		}
	}
	return cur, nil
}
