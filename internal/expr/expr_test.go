package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolMatches_IgnoresNote(t *testing.T) {
	a := &Symbol{Name: "x", Note: "from the left factor"}
	b := &Symbol{Name: "x"}

	assert.True(t, a.Matches(b), "annotation metadata must not break matching")
	assert.True(t, b.Matches(a))
}

func TestSymbolMatches_NameMismatch(t *testing.T) {
	assert.False(t, Sym("x").Matches(Sym("y")))
}

func TestSymbolMatches_KindMismatch(t *testing.T) {
	assert.False(t, Sym("x").Matches(Tensor("x", "lorentz", "mu")))
	assert.False(t, Sym("x").Matches(Int(1)))
}

func TestTensorMatches(t *testing.T) {
	testCases := []struct {
		name  string
		a, b  *TensorSymbol
		match bool
	}{
		{"identical", Tensor("g", "lorentz", "mu", "nu"), Tensor("g", "lorentz", "mu", "nu"), true},
		{"note ignored", &TensorSymbol{Name: "g", Space: "lorentz", Indices: []string{"mu"}, Note: "metric"}, Tensor("g", "lorentz", "mu"), true},
		{"different space", Tensor("g", "lorentz", "mu"), Tensor("g", "color", "mu"), false},
		{"index order matters", Tensor("g", "lorentz", "mu", "nu"), Tensor("g", "lorentz", "nu", "mu"), false},
		{"index arity", Tensor("g", "lorentz", "mu"), Tensor("g", "lorentz", "mu", "nu"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.match, tc.a.Matches(tc.b))
		})
	}
}

func TestSpinorMatches_DefaultSpace(t *testing.T) {
	implicit := Spinor("psi")
	explicit := &SpinorSymbol{Name: "psi", Space: DefaultSpinorSpace}

	assert.True(t, implicit.Matches(explicit))
	assert.Equal(t, DefaultSpinorSpace, SpaceOf(implicit))
}

func TestConstMatches_ByValue(t *testing.T) {
	assert.True(t, Rat(2, 4).Matches(Rat(1, 2)), "constants compare by exact value")
	assert.False(t, Int(2).Matches(Int(3)))
	assert.False(t, Int(2).Matches(Sym("x")))
}

func TestSpaceOf(t *testing.T) {
	assert.Equal(t, "", SpaceOf(Sym("x")))
	assert.Equal(t, "", SpaceOf(Int(2)))
	assert.Equal(t, "", SpaceOf(&Sum{Terms: []Expr{Sym("x"), Sym("y")}}))
	assert.Equal(t, "lorentz", SpaceOf(Tensor("g", "lorentz", "mu")))
	assert.Equal(t, DefaultSpinorSpace, SpaceOf(Spinor("psi")))
}

func TestEqual_Structural(t *testing.T) {
	a := &Sum{Terms: []Expr{Sym("x"), Sym("y")}}
	b := &Sum{Terms: []Expr{Sym("x"), Sym("y")}}
	swapped := &Sum{Terms: []Expr{Sym("y"), Sym("x")}}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, swapped), "Equal is order-sensitive; commutativity is the matcher's job")
}

func TestEqual_Power(t *testing.T) {
	a := NewPower(Sym("x"), Int(2))
	b := NewPower(Sym("x"), Int(2))
	c := NewPower(Sym("x"), Int(3))

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqual_PatternVarIdentity(t *testing.T) {
	assert.True(t, Equal(Var("a"), Var("a")))
	assert.False(t, Equal(Var("a"), Var("b")), "distinct variables are never equal")
	assert.False(t, Equal(Var("a"), Sym("a")), "a variable is not the symbol of the same name")
}

func TestContainsPattern(t *testing.T) {
	plain := &Product{Factors: []Expr{Int(2), Sym("x")}}
	nested := NewPower(&Sum{Terms: []Expr{Sym("x"), Var("a")}}, Int(2))

	assert.False(t, ContainsPattern(plain))
	assert.True(t, ContainsPattern(Var("a")))
	assert.True(t, ContainsPattern(nested), "variables under powers count")
}
