package expr

// Located pairs a sub-expression with its path from the root.
type Located struct {
	Path Path
	Expr Expr
}

// Enumerate produces every node of the tree in pre-order, each paired with
// its path: first the root at the empty path, then recursively the terms
// of sums and the factors of products. Leaves (including Power nodes,
// whose operands are not separately addressable) produce no recursion.
//
// The result is the complete candidate set of anchors for top-level
// matching. Order matters only for result ordering: the first successful
// anchor in pre-order is reported first.
func Enumerate(subject Expr) []Located {
	var out []Located
	walk(subject, Path{}, &out)
	return out
}

func walk(e Expr, at Path, out *[]Located) {
	*out = append(*out, Located{Path: at, Expr: e})
	switch n := e.(type) {
	case *Sum:
		for i, t := range n.Terms {
			walk(t, at.Append(Term(i)), out)
		}
	case *Product:
		for i, f := range n.Factors {
			walk(f, at.Append(Factor(i)), out)
		}
	}
}
