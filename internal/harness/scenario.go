package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bollu/Wheeler/internal/exprdoc"
)

// Scenario defines one match conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name for trace comparison.
	Name string `yaml:"name"`

	// Description explains what behavior this scenario pins down.
	Description string `yaml:"description"`

	// Pattern and Subject are expression documents.
	Pattern exprdoc.Node `yaml:"pattern"`
	Subject exprdoc.Node `yaml:"subject"`

	// Count is the expected total number of reports. Optional when
	// Expect is non-empty.
	Count *int `yaml:"count,omitempty"`

	// Expect lists reports that must appear, identified by anchor.
	Expect []ExpectedMatch `yaml:"expect,omitempty"`
}

// ExpectedMatch pins down one report.
type ExpectedMatch struct {
	// Anchor is the report's anchor path key, e.g. "/" or "/t1".
	Anchor string `yaml:"anchor"`

	// Paths, when non-empty, must equal the report's matched paths in
	// confirmation order.
	Paths []string `yaml:"paths,omitempty"`

	// Bindings, when non-empty, is a subset match against the report's
	// bindings by flat rendering. Only the named variables are checked.
	Bindings map[string]string `yaml:"bindings,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly instead of silently weakening a
// scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadDir loads every *.yaml scenario in a directory, sorted by file
// name so suite order is stable.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	scenarios := make([]*Scenario, 0, len(names))
	for _, name := range names {
		s, err := LoadScenario(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Pattern.Kind == "" {
		return fmt.Errorf("pattern is required")
	}
	if s.Subject.Kind == "" {
		return fmt.Errorf("subject is required")
	}
	if s.Count == nil && len(s.Expect) == 0 {
		return fmt.Errorf("count or expect is required")
	}
	if s.Count != nil && *s.Count < 0 {
		return fmt.Errorf("count must be non-negative")
	}
	for i, exp := range s.Expect {
		if exp.Anchor == "" {
			return fmt.Errorf("expect[%d]: anchor is required", i)
		}
	}
	return nil
}
