package wave

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CheckpointVersion is the schema version written by this build.
const CheckpointVersion = 1

// Mode is the game mode recorded in checkpoints.
const Mode = "waves"

var (
	// ErrCheckpointVersion is returned for checkpoints written by an incompatible build.
	ErrCheckpointVersion = errors.New("wave: unsupported checkpoint version")
	// ErrCheckpointInvalid is returned for checkpoints that cannot be resumed.
	ErrCheckpointInvalid = errors.New("wave: invalid checkpoint")
)

// Checkpoint records progress after a completed wave. Resuming starts the
// wave after CurrentWave with the recorded lives and score.
type Checkpoint struct {
	Version          int      `json:"version"`
	Timestamp        int64    `json:"timestamp"` // Unix milliseconds
	GameMode         string   `json:"gameMode"`
	CurrentWave      int      `json:"currentWave"`
	Lives            int      `json:"lives"`
	Score            int      `json:"score"`
	SetsShownHistory []string `json:"setsShownHistory"`
	HintsDisabled    bool     `json:"hintsDisabled"`
}

// Time returns the checkpoint's timestamp.
func (c Checkpoint) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// Validate reports whether c can be resumed by this build.
func (c Checkpoint) Validate() error {
	if c.Version != CheckpointVersion {
		return fmt.Errorf("%w: %d", ErrCheckpointVersion, c.Version)
	}
	if c.GameMode != Mode {
		return fmt.Errorf("%w: mode %q", ErrCheckpointInvalid, c.GameMode)
	}
	if c.CurrentWave < 0 || c.Lives <= 0 || c.Score < 0 {
		return fmt.Errorf("%w: wave %d, lives %d, score %d", ErrCheckpointInvalid, c.CurrentWave, c.Lives, c.Score)
	}
	return nil
}

// Marshal encodes c as JSON.
func (c Checkpoint) Marshal() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("wave: encode checkpoint: %w", err)
	}
	return data, nil
}

// ParseCheckpoint decodes and validates a JSON checkpoint.
func ParseCheckpoint(data []byte) (Checkpoint, error) {
	var c Checkpoint
	if err := json.Unmarshal(data, &c); err != nil {
		return Checkpoint{}, fmt.Errorf("wave: decode checkpoint: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Checkpoint{}, err
	}
	return c, nil
}
