package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// QueryRecord is one logged match query.
type QueryRecord struct {
	ID         string `json:"id"`
	Pattern    string `json:"pattern"`
	Subject    string `json:"subject"`
	MatchCount int    `json:"match_count"`
	CreatedAt  string `json:"created_at"`
}

// MatchRecord is one logged match report.
type MatchRecord struct {
	Ord      int               `json:"ord"`
	Anchor   string            `json:"anchor"`
	Paths    []string          `json:"paths"`
	Bindings map[string]string `json:"bindings"`
}

// Queries lists logged queries matching the filter in creation order
// (UUIDv7 id order). The zero filter lists everything.
func (s *Store) Queries(ctx context.Context, f Filter) ([]QueryRecord, error) {
	tail, params := f.compile()
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pattern, subject, match_count, created_at
		FROM queries
	`+tail, params...)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	var out []QueryRecord
	for rows.Next() {
		var q QueryRecord
		if err := rows.Scan(&q.ID, &q.Pattern, &q.Subject, &q.MatchCount, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("list queries: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Matches lists the reports logged for one query, in anchor pre-order.
func (s *Store) Matches(ctx context.Context, queryID string) ([]MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ord, anchor, paths, bindings
		FROM matches
		WHERE query_id = ?
		ORDER BY ord
	`, queryID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var m MatchRecord
		var pathsJSON, bindingsJSON string
		if err := rows.Scan(&m.Ord, &m.Anchor, &pathsJSON, &bindingsJSON); err != nil {
			return nil, fmt.Errorf("list matches: %w", err)
		}
		if err := json.Unmarshal([]byte(pathsJSON), &m.Paths); err != nil {
			return nil, fmt.Errorf("list matches: decode paths: %w", err)
		}
		if err := json.Unmarshal([]byte(bindingsJSON), &m.Bindings); err != nil {
			return nil, fmt.Errorf("list matches: decode bindings: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
