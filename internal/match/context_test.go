package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bollu/Wheeler/internal/expr"
)

func TestContextBind_EqualityConstraint(t *testing.T) {
	ctx := NewContext()

	require.True(t, ctx.Bind("a", expr.Sym("x")))
	assert.True(t, ctx.Bind("a", expr.Sym("x")), "rebinding to an equal expression succeeds")
	assert.False(t, ctx.Bind("a", expr.Sym("y")), "rebinding to a different expression fails")

	bound, ok := ctx.Binding("a")
	require.True(t, ok)
	assert.True(t, expr.Equal(expr.Sym("x"), bound), "failed rebind must not overwrite")
}

func TestContextSaveRestore(t *testing.T) {
	ctx := NewContext()
	require.True(t, ctx.Bind("a", expr.Sym("x")))
	ctx.Visit(expr.Path{}.Append(expr.Term(0)))

	save := ctx.Save()

	require.True(t, ctx.Bind("b", expr.Sym("y")))
	ctx.Visit(expr.Path{}.Append(expr.Term(1)))

	ctx.Restore(save)

	_, ok := ctx.Binding("b")
	assert.False(t, ok, "bindings after the branch point are discarded")
	_, ok = ctx.Binding("a")
	assert.True(t, ok, "bindings before the branch point survive")
	assert.Len(t, ctx.visited, 1)
}

func TestContextSave_IsolatesSiblingBranches(t *testing.T) {
	ctx := NewContext()

	save := ctx.Save()
	require.True(t, ctx.Bind("a", expr.Sym("x")))
	ctx.Restore(save)

	save = ctx.Save()
	require.True(t, ctx.Bind("a", expr.Sym("y")), "a restored context has no stale binding")
	ctx.Restore(save)

	_, ok := ctx.Binding("a")
	assert.False(t, ok)
}
