package state

// WaveState tracks the extended wave mode. It rides along in the game state
// so screens can show wave progress; the wave layer owns its transitions.
type WaveState struct {
	Index        int      // 1-based wave number
	SetCodes     []string // Sets assigned to this wave
	Completed    int      // Sets answered in this wave
	History      []string // Every set code shown in any wave so far
	LivesAtStart int
	ScoreAtStart int
}

// Clone returns a deep copy, or nil for a nil receiver.
func (w *WaveState) Clone() *WaveState {
	if w == nil {
		return nil
	}
	c := *w
	c.SetCodes = append([]string(nil), w.SetCodes...)
	c.History = append([]string(nil), w.History...)
	return &c
}

// Shown reports whether code appeared in any wave so far.
func (w *WaveState) Shown(code string) bool {
	if w == nil {
		return false
	}
	for _, c := range w.History {
		if c == code {
			return true
		}
	}
	return false
}

// WithCompletion returns a copy with one more completed set.
func (w *WaveState) WithCompletion() *WaveState {
	if w == nil {
		return nil
	}
	c := w.Clone()
	c.Completed++
	return c
}
