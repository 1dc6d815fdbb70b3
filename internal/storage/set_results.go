package storage

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/setfall/internal/game/state"
)

// SetResult is the recorded history for one set.
type SetResult struct {
	Code    string
	Success int
	Failure int
}

// Attempts returns the total number of recorded outcomes.
func (r SetResult) Attempts() int {
	return r.Success + r.Failure
}

// RecordSetResult adds one outcome for a set code.
func (s *Store) RecordSetResult(code string, success bool) error {
	succ, fail := 0, 1
	if success {
		succ, fail = 1, 0
	}
	_, err := s.db.Exec(
		`INSERT INTO set_results (code, success, failure, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(code) DO UPDATE SET
		   success = success + excluded.success,
		   failure = failure + excluded.failure,
		   updated_at = CURRENT_TIMESTAMP`,
		code, succ, fail,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result for %s: %w", code, err)
	}
	return nil
}

// SetResults returns every recorded set, ordered by code.
func (s *Store) SetResults() ([]SetResult, error) {
	rows, err := s.db.Query(`SELECT code, success, failure FROM set_results ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query set results: %w", err)
	}
	defer rows.Close()

	var results []SetResult
	for rows.Next() {
		var r SetResult
		if err := rows.Scan(&r.Code, &r.Success, &r.Failure); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// SetStatistics returns the recorded history keyed by set code, in the
// form the game uses to tint icons.
func (s *Store) SetStatistics() (map[string]state.SetStat, error) {
	results, err := s.SetResults()
	if err != nil {
		return nil, err
	}
	stats := make(map[string]state.SetStat, len(results))
	for _, r := range results {
		stats[r.Code] = state.SetStat{Success: r.Success, Failure: r.Failure}
	}
	return stats, nil
}

// HardestSets returns up to limit sets with the most failures relative to
// attempts, ignoring sets seen fewer than minAttempts times.
func (s *Store) HardestSets(limit, minAttempts int) ([]SetResult, error) {
	results, err := s.SetResults()
	if err != nil {
		return nil, err
	}

	var eligible []SetResult
	for _, r := range results {
		if r.Attempts() >= minAttempts && r.Attempts() > 0 {
			eligible = append(eligible, r)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		// Compare failure rates without division: fa/ta > fb/tb
		return a.Failure*b.Attempts() > b.Failure*a.Attempts()
	})
	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible, nil
}

// ClearSetResults deletes all per-set history.
func (s *Store) ClearSetResults() error {
	if _, err := s.db.Exec("DELETE FROM set_results"); err != nil {
		return fmt.Errorf("storage: cannot clear set results: %w", err)
	}
	return nil
}
