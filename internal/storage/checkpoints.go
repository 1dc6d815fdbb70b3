package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/setfall/internal/game/wave"
)

// ErrNoCheckpoint is returned when no checkpoint is stored for a mode.
var ErrNoCheckpoint = errors.New("storage: no checkpoint")

// SaveCheckpoint stores a checkpoint and returns its ID.
func (s *Store) SaveCheckpoint(cp wave.Checkpoint) (string, error) {
	payload, err := cp.Marshal()
	if err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO checkpoints (id, mode, wave, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, cp.GameMode, cp.CurrentWave, string(payload), s.now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save checkpoint: %w", err)
	}
	return id, nil
}

// LatestCheckpoint returns the most recent checkpoint for a mode.
// It returns ErrNoCheckpoint when none exists, and the checkpoint's own
// validation error when the stored payload cannot be resumed.
func (s *Store) LatestCheckpoint(mode string) (wave.Checkpoint, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT payload FROM checkpoints WHERE mode = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		mode,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return wave.Checkpoint{}, ErrNoCheckpoint
	}
	if err != nil {
		return wave.Checkpoint{}, fmt.Errorf("storage: cannot query checkpoint: %w", err)
	}

	cp, err := wave.ParseCheckpoint([]byte(payload))
	if err != nil {
		return wave.Checkpoint{}, fmt.Errorf("storage: stored checkpoint: %w", err)
	}
	return cp, nil
}

// ClearCheckpoints deletes every checkpoint for a mode.
func (s *Store) ClearCheckpoints(mode string) error {
	if _, err := s.db.Exec("DELETE FROM checkpoints WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear checkpoints: %w", err)
	}
	return nil
}
