package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const renameRules = `
rules:
  - name: x-to-y
    pattern: {kind: symbol, name: x}
    replacement: {kind: symbol, name: y}
`

const flipFlopRules = `
rules:
  - name: flip
    pattern: {kind: symbol, name: x}
    replacement: {kind: symbol, name: y}
  - name: flop
    pattern: {kind: symbol, name: y}
    replacement: {kind: symbol, name: x}
`

const subjectXPlusX = `
kind: sum
terms:
  - kind: symbol
    name: x
  - kind: symbol
    name: x
`

func TestRewriteText(t *testing.T) {
	dir := t.TempDir()
	rules := writeDoc(t, dir, "rules.yaml", renameRules)
	subject := writeDoc(t, dir, "subject.yaml", subjectXPlusX)

	buf := &bytes.Buffer{}
	cmd := NewRewriteCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{rules, subject})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "y + y\n", buf.String())
}

func TestRewriteJSONReportsPasses(t *testing.T) {
	dir := t.TempDir()
	rules := writeDoc(t, dir, "rules.yaml", renameRules)
	subject := writeDoc(t, dir, "subject.yaml", subjectXPlusX)

	buf := &bytes.Buffer{}
	cmd := NewRewriteCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{rules, subject})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result RewriteResult
	require.NoError(t, json.Unmarshal(payload, &result))
	assert.Equal(t, "x + x", result.Subject)
	assert.Equal(t, "y + y", result.Rewritten)
	assert.Equal(t, 2, result.Passes)
}

func TestRewriteQuotaExitCode(t *testing.T) {
	dir := t.TempDir()
	rules := writeDoc(t, dir, "rules.yaml", flipFlopRules)
	subject := writeDoc(t, dir, "subject.yaml", subjectXPlusX)

	buf := &bytes.Buffer{}
	cmd := NewRewriteCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--max-passes", "7", rules, subject})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error:")
}

func TestRewriteBadRulesExitCode(t *testing.T) {
	dir := t.TempDir()
	rules := writeDoc(t, dir, "rules.yaml", "rules: []\n")
	subject := writeDoc(t, dir, "subject.yaml", subjectXPlusX)

	buf := &bytes.Buffer{}
	cmd := NewRewriteCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{rules, subject})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
