package rewrite

import (
	"fmt"

	"github.com/bollu/Wheeler/internal/expr"
)

// DefaultMaxPasses bounds Fixpoint when the caller passes no limit.
const DefaultMaxPasses = 1000

// QuotaError reports a rule set that was still rewriting when the pass
// quota ran out - almost always a rule pair that undoes itself.
type QuotaError struct {
	Passes int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("rewriting did not reach a fixed point within %d passes", e.Passes)
}

// Fixpoint applies the rules in declaration order, restarting from the
// first rule after every successful rewrite, until no rule matches. One
// pass is one successful rewrite. Returns the rewritten expression and
// the number of passes used.
//
// maxPasses <= 0 selects DefaultMaxPasses. Exceeding the quota returns a
// QuotaError alongside the best expression reached so far.
func Fixpoint(rules []Rule, subject expr.Expr, maxPasses int) (expr.Expr, int, error) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	cur := subject
	passes := 0
	for {
		applied := false
		for _, r := range rules {
			next, ok, err := r.Apply(cur)
			if err != nil {
				return cur, passes, err
			}
			if !ok {
				continue
			}
			cur = next
			passes++
			applied = true
			if passes >= maxPasses {
				return cur, passes, &QuotaError{Passes: maxPasses}
			}
			break
		}
		if !applied {
			return cur, passes, nil
		}
	}
}
