package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "sum_binding.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sum_binding", s.Name)
	require.NotNil(t, s.Count)
	assert.Equal(t, 1, *s.Count)
	require.Len(t, s.Expect, 1)
	assert.Equal(t, "/", s.Expect[0].Anchor)
	assert.Equal(t, map[string]string{"x": "3"}, s.Expect[0].Bindings)
}

func TestLoadScenario_RejectsUnknownFields(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: d
pattern: {kind: symbol, name: x}
subject: {kind: symbol, name: x}
count: 1
asertions: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse YAML")
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "missing name",
			doc: `
description: d
pattern: {kind: symbol, name: x}
subject: {kind: symbol, name: x}
count: 0
`,
			want: "name is required",
		},
		{
			name: "missing expectations",
			doc: `
name: s
description: d
pattern: {kind: symbol, name: x}
subject: {kind: symbol, name: x}
`,
			want: "count or expect is required",
		},
		{
			name: "negative count",
			doc: `
name: s
description: d
pattern: {kind: symbol, name: x}
subject: {kind: symbol, name: x}
count: -1
`,
			want: "count must be non-negative",
		},
		{
			name: "expect without anchor",
			doc: `
name: s
description: d
pattern: {kind: symbol, name: x}
subject: {kind: symbol, name: x}
expect:
  - bindings: {x: "1"}
`,
			want: "expect[0]: anchor is required",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadDir(t *testing.T) {
	scenarios, err := LoadDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	// File-name order keeps suite output stable.
	assert.Equal(t, "gamma_window", scenarios[0].Name)
	assert.Equal(t, "no_match", scenarios[1].Name)
	assert.Equal(t, "sum_binding", scenarios[2].Name)
}
