package expr

import (
	"strings"
)

func (s *Sum) String() string {
	if len(s.Terms) == 0 {
		return "0"
	}
	parts := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (p *Product) String() string {
	if len(p.Factors) == 0 {
		return "1"
	}
	parts := make([]string, len(p.Factors))
	for i, f := range p.Factors {
		if _, isSum := f.(*Sum); isSum {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (p *Power) String() string {
	base := p.Base.String()
	switch p.Base.(type) {
	case *Sum, *Product, *Power:
		base = "(" + base + ")"
	}
	exp := p.Exponent.String()
	switch p.Exponent.(type) {
	case *Sum, *Product, *Power:
		exp = "(" + exp + ")"
	}
	return base + "^" + exp
}

func (s *Symbol) String() string { return s.Name }

func (t *TensorSymbol) String() string {
	if len(t.Indices) == 0 {
		return t.Name
	}
	return t.Name + "[" + strings.Join(t.Indices, ",") + "]"
}

func (s *SpinorSymbol) String() string { return s.Name }

func (c *Const) String() string {
	if c.Value.IsInt() {
		return c.Value.Num().String()
	}
	return c.Value.RatString()
}

func (v *PatternVar) String() string { return "$" + v.Name }
