package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bollu/Wheeler/internal/expr"
	"github.com/bollu/Wheeler/internal/testutil"
)

func TestSubstitute_ReplacesVariables(t *testing.T) {
	template := &expr.Sum{Terms: []expr.Expr{expr.Var("x"), expr.Int(1)}}
	bindings := map[string]expr.Expr{"x": expr.Sym("y")}

	got, err := Substitute(template, bindings)
	require.NoError(t, err)
	assert.Equal(t, "y + 1", got.String())
}

func TestSubstitute_FlattensCompositeBindings(t *testing.T) {
	// A sum bound into a sum template must come out flattened, or the
	// matcher's precondition breaks downstream.
	template := &expr.Sum{Terms: []expr.Expr{expr.Var("x"), expr.Int(1)}}
	bindings := map[string]expr.Expr{
		"x": &expr.Sum{Terms: []expr.Expr{expr.Sym("y"), expr.Sym("z")}},
	}

	got, err := Substitute(template, bindings)
	require.NoError(t, err)
	require.NoError(t, expr.Validate(got))
	assert.Equal(t, "y + z + 1", got.String())
}

func TestSubstitute_UnboundVariable(t *testing.T) {
	_, err := Substitute(expr.Var("missing"), map[string]expr.Expr{})
	var ub *UnboundVarError
	require.ErrorAs(t, err, &ub)
	assert.Equal(t, "missing", ub.Var)
}

func TestApply_LeafReplacement(t *testing.T) {
	rule := Rule{Name: "a-to-d", Pattern: expr.Sym("a"), Replacement: expr.Sym("d")}
	subject := &expr.Sum{Terms: []expr.Expr{expr.Sym("a"), expr.Sym("b"), expr.Sym("c")}}

	got, ok, err := rule.Apply(subject)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "d + b + c", got.String())
}

func TestApply_NoMatchLeavesSubjectUntouched(t *testing.T) {
	rule := Rule{Name: "nope", Pattern: expr.Sym("w"), Replacement: expr.Sym("d")}
	subject := testutil.XYZ()

	got, ok, err := rule.Apply(subject)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Same(t, expr.Expr(subject), got)
}

func TestApply_PartialSumKeepsUnconsumedTerms(t *testing.T) {
	rule := Rule{
		Name:        "collapse",
		Pattern:     &expr.Sum{Terms: []expr.Expr{expr.Sym("a"), expr.Sym("b")}},
		Replacement: expr.Sym("r"),
	}
	subject := &expr.Sum{Terms: []expr.Expr{expr.Sym("a"), expr.Sym("b"), expr.Sym("c")}}

	got, ok, err := rule.Apply(subject)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c + r", got.String())
}

func TestApply_PartialProductKeepsUnconsumedFactors(t *testing.T) {
	rule := Rule{
		Name:        "contract",
		Pattern:     &expr.Product{Factors: []expr.Expr{testutil.Gamma("mu"), testutil.Gamma("nu")}},
		Replacement: expr.Sym("s"),
	}
	subject := &expr.Product{Factors: []expr.Expr{
		expr.Sym("x"), testutil.Gamma("mu"), testutil.Gamma("nu"),
	}}

	got, ok, err := rule.Apply(subject)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x*s", got.String())
}

func TestApply_FullMatchReplacesWholeNode(t *testing.T) {
	rule := Rule{
		Name:        "whole",
		Pattern:     &expr.Sum{Terms: []expr.Expr{expr.Sym("x"), expr.Sym("y"), expr.Sym("z")}},
		Replacement: expr.Sym("w"),
	}

	got, ok, err := rule.Apply(testutil.XYZ())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "w", got.String())
}

func TestApply_UsesBindings(t *testing.T) {
	// $u^2 -> $u * $u
	rule := Rule{
		Name:        "unsquare",
		Pattern:     expr.NewPower(expr.Var("u"), expr.Int(2)),
		Replacement: &expr.Product{Factors: []expr.Expr{expr.Var("u"), expr.Var("u")}},
	}
	subject := &expr.Sum{Terms: []expr.Expr{
		expr.NewPower(expr.Sym("x"), expr.Int(2)),
		expr.Sym("y"),
	}}

	got, ok, err := rule.Apply(subject)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x*x + y", got.String())
}

func TestApply_PowerOperandNeverLosesTerms(t *testing.T) {
	// (x+y)^2 against (x+y+z)^2 must not match at all: the operand sum
	// is not separately addressable, so a partial match there would
	// silently drop z when the whole power is replaced.
	rule := Rule{
		Name: "square-collapse",
		Pattern: expr.NewPower(
			&expr.Sum{Terms: []expr.Expr{expr.Sym("x"), expr.Sym("y")}},
			expr.Int(2),
		),
		Replacement: expr.Sym("r"),
	}
	subject := expr.NewPower(testutil.XYZ(), expr.Int(2))

	got, ok, err := rule.Apply(subject)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Same(t, expr.Expr(subject), got)
}

func TestApply_ExactPowerOperandReplacesWholePower(t *testing.T) {
	rule := Rule{
		Name: "square-collapse",
		Pattern: expr.NewPower(
			&expr.Sum{Terms: []expr.Expr{expr.Sym("x"), expr.Sym("y")}},
			expr.Int(2),
		),
		Replacement: expr.Sym("r"),
	}
	subject := &expr.Sum{Terms: []expr.Expr{
		expr.NewPower(
			&expr.Sum{Terms: []expr.Expr{expr.Sym("y"), expr.Sym("x")}},
			expr.Int(2),
		),
		expr.Sym("w"),
	}}

	got, ok, err := rule.Apply(subject)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r + w", got.String())
}

func TestApply_ReplacementVariableNotInPattern(t *testing.T) {
	rule := Rule{
		Name:        "broken",
		Pattern:     expr.Sym("a"),
		Replacement: expr.Var("ghost"),
	}
	subject := &expr.Sum{Terms: []expr.Expr{expr.Sym("a"), expr.Sym("b")}}

	_, _, err := rule.Apply(subject)
	var ub *UnboundVarError
	require.ErrorAs(t, err, &ub)
	assert.Equal(t, "broken", ub.Rule)
}
