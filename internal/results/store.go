// Package results persists practice-test outcomes. The engine itself never
// touches this; it is the narrow save/query surface the test flow writes
// through.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i-sifat/onushilonhub-sub000/internal/testmode"
)

var ErrNotFound = errors.New("result not found")

type Result struct {
	ID        string                   `json:"id"`
	SessionID string                   `json:"session_id"`
	Level     string                   `json:"level,omitempty"`
	Board     string                   `json:"board,omitempty"`
	Year      int                      `json:"year,omitempty"`
	RuleID    int                      `json:"rule_id,omitempty"`
	Correct   int                      `json:"correct"`
	Total     int                      `json:"total"`
	Percent   float64                  `json:"percent"`
	Detail    []testmode.QuestionScore `json:"detail,omitempty"`
	TakenAt   int64                    `json:"taken_at"`
}

// SessionSummary aggregates a viewer's saved results.
type SessionSummary struct {
	Count      int     `json:"count"`
	AvgPercent float64 `json:"avg_percent"`
	Best       float64 `json:"best_percent"`
}

type Store interface {
	Save(ctx context.Context, r Result) error
	ListBySession(ctx context.Context, sessionID string) ([]Result, error)
	Summary(ctx context.Context, sessionID string) (SessionSummary, error)
}

// --- in-memory store (tests, ephemeral deployments) ---

type memoryStore struct {
	mu      sync.RWMutex
	results map[string]Result
}

func NewInMemoryStore() Store {
	return &memoryStore{results: map[string]Result{}}
}

func (m *memoryStore) Save(_ context.Context, r Result) error {
	if r.ID == "" {
		return errors.New("result id required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[r.ID] = r
	return nil
}

func (m *memoryStore) ListBySession(_ context.Context, sessionID string) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Result
	for _, r := range m.results {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TakenAt < out[j].TakenAt })
	return out, nil
}

func (m *memoryStore) Summary(ctx context.Context, sessionID string) (SessionSummary, error) {
	rs, err := m.ListBySession(ctx, sessionID)
	if err != nil {
		return SessionSummary{}, err
	}
	return summarize(rs), nil
}

func summarize(rs []Result) SessionSummary {
	var s SessionSummary
	s.Count = len(rs)
	for _, r := range rs {
		s.AvgPercent += r.Percent
		if r.Percent > s.Best {
			s.Best = r.Percent
		}
	}
	if s.Count > 0 {
		s.AvgPercent /= float64(s.Count)
	}
	return s
}

// --- SQL store ---

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Save(ctx context.Context, r Result) error {
	if r.ID == "" {
		return errors.New("result id required")
	}
	if r.TakenAt == 0 {
		r.TakenAt = time.Now().Unix()
	}
	dj, err := json.Marshal(r.Detail)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO test_results
		(id,session_id,level,board,year,rule_id,correct,total,percent,detail_json,taken_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		r.ID, r.SessionID, r.Level, r.Board, r.Year, r.RuleID, r.Correct, r.Total, r.Percent, string(dj), r.TakenAt)
	return err
}

func (s *SQLStore) ListBySession(ctx context.Context, sessionID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,session_id,level,board,year,rule_id,correct,total,percent,detail_json,taken_at
		FROM test_results WHERE session_id=$1 ORDER BY taken_at`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		var r Result
		var dj string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Level, &r.Board, &r.Year, &r.RuleID,
			&r.Correct, &r.Total, &r.Percent, &dj, &r.TakenAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(dj), &r.Detail); err != nil {
			r.Detail = nil
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Summary(ctx context.Context, sessionID string) (SessionSummary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(AVG(percent),0), COALESCE(MAX(percent),0)
		FROM test_results WHERE session_id=$1`, sessionID)
	var sum SessionSummary
	if err := row.Scan(&sum.Count, &sum.AvgPercent, &sum.Best); err != nil {
		return SessionSummary{}, err
	}
	return sum, nil
}
