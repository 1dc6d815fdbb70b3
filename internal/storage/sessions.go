package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one recorded play session.
type Session struct {
	ID        string
	Mode      string
	Player    string
	Score     int
	Correct   int
	Won       bool
	StartedAt time.Time
	EndedAt   time.Time // Zero while the session is open
}

// StartSession records the start of a play session and returns its ID.
func (s *Store) StartSession(mode, player string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, mode, player, started_at) VALUES (?, ?, ?, ?)`,
		id, mode, player, s.now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	return id, nil
}

// EndSession records the outcome of a session.
func (s *Store) EndSession(id string, score, correct int, won bool) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET score = ?, correct = ?, won = ?, ended_at = ? WHERE id = ?`,
		score, correct, won, s.now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: unknown session %s", id)
	}
	return nil
}

// RecentSessions returns the latest sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mode, player, score, correct, won, started_at, ended_at
		 FROM sessions
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var started, ended any
		var won sql.NullBool
		if err := rows.Scan(&sess.ID, &sess.Mode, &sess.Player, &sess.Score, &sess.Correct, &won, &started, &ended); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Won = won.Valid && won.Bool
		sess.StartedAt = parseTime(started)
		sess.EndedAt = parseTime(ended)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}
