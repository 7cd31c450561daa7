// Package testutil provides shared deterministic expression fixtures for
// package tests. Fixtures are built fresh per call so tests can never
// observe mutation through a shared tree.
package testutil

import (
	"github.com/bollu/Wheeler/internal/expr"
)

// XYZ returns the sum x + y + z.
func XYZ() *expr.Sum {
	return &expr.Sum{Terms: []expr.Expr{expr.Sym("x"), expr.Sym("y"), expr.Sym("z")}}
}

// Metric returns the Lorentz metric tensor g[mu,nu].
func Metric() *expr.TensorSymbol {
	return expr.Tensor("g", "lorentz", "mu", "nu")
}

// Gamma returns a Dirac-style tensor symbol gamma[idx] in the lorentz
// space.
func Gamma(idx string) *expr.TensorSymbol {
	return expr.Tensor("gamma", "lorentz", idx)
}

// Psi returns the spinor symbol psi.
func Psi() *expr.SpinorSymbol {
	return expr.Spinor("psi")
}

// MixedProduct returns 2 * g[mu,nu] * gamma[mu] * x: a commuting constant
// and scalar around two non-commuting lorentz factors.
func MixedProduct() *expr.Product {
	return &expr.Product{Factors: []expr.Expr{
		expr.Int(2),
		Metric(),
		Gamma("mu"),
		expr.Sym("x"),
	}}
}
