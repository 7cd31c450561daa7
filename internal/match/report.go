package match

import (
	"fmt"

	"github.com/bollu/Wheeler/internal/expr"
)

// Report describes one successful match attempt: where the pattern
// anchored in the subject, every subject path confirmed to be part of the
// match, and the final variable bindings.
type Report struct {
	// Anchor is the subject path the attempt was rooted at.
	Anchor expr.Path

	// Matched lists every visited subject path, deduplicated, in the
	// order the engine confirmed them. Anchor is always among them.
	Matched []expr.Path

	// Bindings maps pattern-variable names to the sub-expressions they
	// matched.
	Bindings map[string]expr.Expr
}

// Covers reports whether the given subject path was part of the match.
func (r *Report) Covers(p expr.Path) bool {
	for _, m := range r.Matched {
		if m.Equal(p) {
			return true
		}
	}
	return false
}

// FindAll runs one fresh match attempt per pre-order sub-expression of the
// subject and returns a report for every success, in anchor pre-order.
// An empty slice means the pattern matches nowhere.
//
// The only error conditions are structural precondition violations:
// un-flattened Sum/Product nodes on either side, or a pattern variable
// inside the subject.
func FindAll(pattern, subject expr.Expr) ([]Report, error) {
	if err := checkInputs(pattern, subject); err != nil {
		return nil, err
	}
	var reports []Report
	for _, cand := range expr.Enumerate(subject) {
		ctx := NewContext()
		if tryMatch(pattern, cand.Expr, cand.Path, ctx) {
			reports = append(reports, newReport(cand.Path, ctx))
		}
	}
	return reports, nil
}

// Has reports whether the pattern matches anywhere in the subject. It
// short-circuits on the first successful anchor.
func Has(pattern, subject expr.Expr) (bool, error) {
	if err := checkInputs(pattern, subject); err != nil {
		return false, err
	}
	for _, cand := range expr.Enumerate(subject) {
		if tryMatch(pattern, cand.Expr, cand.Path, NewContext()) {
			return true, nil
		}
	}
	return false, nil
}

func checkInputs(pattern, subject expr.Expr) error {
	if err := expr.Validate(pattern); err != nil {
		return fmt.Errorf("pattern: %w", err)
	}
	if err := expr.ValidateSubject(subject); err != nil {
		return fmt.Errorf("subject: %w", err)
	}
	return nil
}

// newReport consumes a successful attempt's context into a Report,
// deduplicating visited paths while keeping confirmation order.
func newReport(anchor expr.Path, ctx *Context) Report {
	seen := make(map[string]bool, len(ctx.visited))
	matched := make([]expr.Path, 0, len(ctx.visited))
	for _, p := range ctx.visited {
		k := p.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		matched = append(matched, p)
	}
	return Report{Anchor: anchor, Matched: matched, Bindings: ctx.bindings}
}
