package match

import (
	"github.com/bollu/Wheeler/internal/expr"
)

// Context is the explicit state threaded through one match attempt: the
// accumulated variable bindings and the paths confirmed to be part of the
// match so far. A Context is created empty per anchor, mutated during the
// attempt, consumed into a Report on success, and discarded on failure.
//
// Callers that try an alternative must bracket it with Save/Restore;
// a failed tryMatch may leave partial state behind.
type Context struct {
	bindings map[string]expr.Expr
	visited  []expr.Path
}

// NewContext creates an empty context for one match attempt.
func NewContext() *Context {
	return &Context{bindings: make(map[string]expr.Expr)}
}

// Bind records a pattern-variable binding. If the variable is already
// bound, the new sub-expression must be structurally equal to the prior
// binding: repeated occurrences of one variable within a pattern impose an
// equality constraint, they never overwrite.
func (c *Context) Bind(name string, to expr.Expr) bool {
	if prev, ok := c.bindings[name]; ok {
		return expr.Equal(prev, to)
	}
	c.bindings[name] = to
	return true
}

// Binding returns the expression bound to a variable, if any.
func (c *Context) Binding(name string) (expr.Expr, bool) {
	e, ok := c.bindings[name]
	return e, ok
}

// Visit records a subject path as part of the match.
func (c *Context) Visit(p expr.Path) {
	c.visited = append(c.visited, p)
}

// Snapshot captures a point-in-time view of a Context that Restore can
// roll back to. The visited list is append-only, so the snapshot stores
// only its length; the binding map is copied (binding maps stay small, one
// entry per pattern variable).
//
// A snapshot may be restored at most once: Restore hands the saved map
// back to the context, so a fresh Save is required before each new
// alternative.
type Snapshot struct {
	bindings   map[string]expr.Expr
	visitedLen int
}

// Save captures the current context state.
func (c *Context) Save() Snapshot {
	b := make(map[string]expr.Expr, len(c.bindings))
	for k, v := range c.bindings {
		b[k] = v
	}
	return Snapshot{bindings: b, visitedLen: len(c.visited)}
}

// Restore rolls the context back to a saved snapshot, discarding bindings
// and visited paths introduced after the branch point.
func (c *Context) Restore(s Snapshot) {
	c.bindings = s.bindings
	c.visited = c.visited[:s.visitedLen]
}
