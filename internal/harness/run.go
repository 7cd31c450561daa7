package harness

import (
	"fmt"

	"github.com/bollu/Wheeler/internal/expr"
	"github.com/bollu/Wheeler/internal/exprdoc"
	"github.com/bollu/Wheeler/internal/match"
)

// Result holds the outcome of one scenario run.
type Result struct {
	Pattern expr.Expr
	Subject expr.Expr
	Reports []match.Report
	Errors  []string
}

// Pass reports whether every expectation held.
func (r *Result) Pass() bool { return len(r.Errors) == 0 }

// AddError records one expectation failure.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Run executes one scenario: build both expressions, run the match
// query, and evaluate the scenario's expectations against the reports.
// A failed expectation lands in Result.Errors; only malformed documents
// return an error.
func Run(scenario *Scenario) (*Result, error) {
	pattern, err := exprdoc.Build(scenario.Pattern)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: pattern: %w", scenario.Name, err)
	}
	subject, err := exprdoc.Build(scenario.Subject)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: subject: %w", scenario.Name, err)
	}

	reports, err := match.FindAll(pattern, subject)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{Pattern: pattern, Subject: subject, Reports: reports}
	evaluateExpectations(scenario, result)
	return result, nil
}

func evaluateExpectations(scenario *Scenario, result *Result) {
	if scenario.Count != nil && len(result.Reports) != *scenario.Count {
		result.AddError("expected %d report(s), got %d", *scenario.Count, len(result.Reports))
	}

	for i, exp := range scenario.Expect {
		rep := findReport(result.Reports, exp.Anchor)
		if rep == nil {
			result.AddError("expect[%d]: no report anchored at %s", i, exp.Anchor)
			continue
		}
		checkPaths(i, exp, rep, result)
		checkBindings(i, exp, rep, result)
	}
}

func findReport(reports []match.Report, anchor string) *match.Report {
	for j := range reports {
		if reports[j].Anchor.Key() == anchor {
			return &reports[j]
		}
	}
	return nil
}

func checkPaths(i int, exp ExpectedMatch, rep *match.Report, result *Result) {
	if len(exp.Paths) == 0 {
		return
	}
	if len(exp.Paths) != len(rep.Matched) {
		result.AddError("expect[%d]: expected %d matched path(s), got %d", i, len(exp.Paths), len(rep.Matched))
		return
	}
	for j, want := range exp.Paths {
		if got := rep.Matched[j].Key(); got != want {
			result.AddError("expect[%d]: path %d: expected %s, got %s", i, j, want, got)
		}
	}
}

// checkBindings is a subset match: only variables the scenario names
// are checked, by flat rendering.
func checkBindings(i int, exp ExpectedMatch, rep *match.Report, result *Result) {
	for name, want := range exp.Bindings {
		bound, ok := rep.Bindings[name]
		if !ok {
			result.AddError("expect[%d]: $%s is unbound", i, name)
			continue
		}
		if got := bound.String(); got != want {
			result.AddError("expect[%d]: $%s: expected %s, got %s", i, name, want, got)
		}
	}
}
