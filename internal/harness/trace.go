package harness

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Trace renders a scenario result into its canonical text form for
// golden comparison: the two flat renderings, every report in anchor
// pre-order with paths in confirmation order, bindings sorted by name,
// and any expectation failures last.
func Trace(scenario *Scenario, result *Result) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "scenario: %s\n", scenario.Name)
	fmt.Fprintf(&b, "pattern: %s\n", result.Pattern)
	fmt.Fprintf(&b, "subject: %s\n", result.Subject)
	fmt.Fprintf(&b, "matches: %d\n", len(result.Reports))
	for i, rep := range result.Reports {
		fmt.Fprintf(&b, "match %d:\n", i)
		fmt.Fprintf(&b, "  anchor: %s\n", rep.Anchor.Key())
		keys := make([]string, len(rep.Matched))
		for j, p := range rep.Matched {
			keys[j] = p.Key()
		}
		fmt.Fprintf(&b, "  paths: %s\n", strings.Join(keys, " "))
		names := make([]string, 0, len(rep.Bindings))
		for name := range rep.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  $%s := %s\n", name, rep.Bindings[name])
		}
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(&b, "FAIL: %s\n", msg)
	}
	return b.Bytes()
}
