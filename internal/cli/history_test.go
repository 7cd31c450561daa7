package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bollu/Wheeler/internal/expr"
	"github.com/bollu/Wheeler/internal/match"
	"github.com/bollu/Wheeler/internal/store"
)

// seedLog records one query with one report into a fresh log database.
func seedLog(t *testing.T, dbPath string) string {
	t.Helper()

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	pattern := &expr.Sum{Terms: []expr.Expr{expr.Var("x"), expr.Int(2)}}
	subject := &expr.Sum{Terms: []expr.Expr{expr.Int(2), expr.Int(3)}}
	reports, err := match.FindAll(pattern, subject)
	require.NoError(t, err)

	id := store.NewQueryID()
	require.NoError(t, s.RecordQuery(context.Background(), id, pattern.String(), subject.String(), reports))
	return id
}

func TestHistoryText(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "log.db")
	id := seedLog(t, dbPath)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, id)
	assert.Contains(t, output, "$x + 2 in 2 + 3")
	assert.NotContains(t, output, "anchor", "reports need --matches")
}

func TestHistoryWithMatches(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "log.db")
	seedLog(t, dbPath)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--matches"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "[0] anchor /")
}

func TestHistoryJSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "log.db")
	id := seedLog(t, dbPath)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--matches"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var entries []HistoryEntry
	require.NoError(t, json.Unmarshal(payload, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].Query.ID)
	require.Len(t, entries[0].Matches, 1)
	assert.Equal(t, "/", entries[0].Matches[0].Anchor)
}

func TestHistoryFiltered(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "log.db")
	seedLog(t, dbPath)

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--pattern", "gamma"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "no recorded queries\n", buf.String(), "no seeded pattern mentions gamma")
}

func TestHistoryEmptyLog(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "log.db")

	buf := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "no recorded queries\n", buf.String())
}
