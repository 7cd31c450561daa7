package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/bollu/Wheeler/internal/match"
)

// NewQueryID returns a fresh UUIDv7 query identifier. V7 ids sort by
// creation time, so the query log lists in chronological order by id.
func NewQueryID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordQuery writes one match query and all of its reports atomically.
// pattern and subject are the flat renderings of the two expressions.
func (s *Store) RecordQuery(ctx context.Context, id, pattern, subject string, reports []match.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO queries (id, pattern, subject, match_count)
		VALUES (?, ?, ?, ?)
	`, id, pattern, subject, len(reports))
	if err != nil {
		return fmt.Errorf("record query: %w", err)
	}

	for ord, rep := range reports {
		pathsJSON, bindingsJSON, err := marshalReport(&rep)
		if err != nil {
			return fmt.Errorf("record query: match %d: %w", ord, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO matches (query_id, ord, anchor, paths, bindings)
			VALUES (?, ?, ?, ?, ?)
		`, id, ord, rep.Anchor.Key(), pathsJSON, bindingsJSON)
		if err != nil {
			return fmt.Errorf("record query: match %d: %w", ord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record query: %w", err)
	}
	return nil
}

// marshalReport serializes a report's matched paths and bindings as JSON
// text columns. Bindings are stored as flat renderings: the log is for
// inspection, not for reconstructing trees.
func marshalReport(rep *match.Report) (pathsJSON, bindingsJSON string, err error) {
	paths := make([]string, len(rep.Matched))
	for i, p := range rep.Matched {
		paths[i] = p.Key()
	}
	pb, err := json.Marshal(paths)
	if err != nil {
		return "", "", err
	}

	bindings := make(map[string]string, len(rep.Bindings))
	for name, e := range rep.Bindings {
		bindings[name] = e.String()
	}
	bb, err := json.Marshal(bindings)
	if err != nil {
		return "", "", err
	}

	return string(pb), string(bb), nil
}
