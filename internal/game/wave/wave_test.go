package wave

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/game/engine"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/sets"
)

const step = 16 * time.Millisecond

var testSets = []sets.Set{
	{Name: "Alpha", Code: "A"},
	{Name: "Beta", Code: "B"},
	{Name: "Gamma", Code: "C"},
	{Name: "Delta", Code: "D"},
	{Name: "Epsilon", Code: "E"},
}

func newTestGame(t *testing.T) (*Game, *engine.ManualScheduler, *[]Checkpoint, *[]engine.Result) {
	t.Helper()
	cfg := config.DefaultGameConfig()
	cfg.Waves.Size = 2

	sched := engine.NewManualScheduler(time.Unix(5000, 0), step)
	var cps []Checkpoint
	var results []engine.Result
	g := New(engine.Options{
		Config:    cfg,
		Sets:      testSets,
		Scheduler: sched,
		Seed:      11,
		Callbacks: engine.Callbacks{
			OnGameComplete: func(r engine.Result) { results = append(results, r) },
		},
	}, func(cp Checkpoint) { cps = append(cps, cp) })
	t.Cleanup(g.Destroy)
	return g, sched, &cps, &results
}

// clearWave answers every icon of the current wave and advances exactly until
// the grace delay has been applied.
func clearWave(t *testing.T, g *Game, sched *engine.ManualScheduler) {
	t.Helper()
	total := g.Snapshot().Total
	for i := 0; i < 2000 && len(g.Snapshot().CompletedSets) < total; i++ {
		if active := g.Snapshot().ActiveIcons(); len(active) > 0 {
			if !g.CheckAnswer(active[0].Name) {
				t.Fatalf("Answer %q failed", active[0].Name)
			}
			continue
		}
		sched.Advance(1)
	}
	if len(g.Snapshot().CompletedSets) < total {
		t.Fatal("Wave did not complete")
	}
	for i := 0; i < 1000 && g.Snapshot().Pending != nil; i++ {
		sched.Advance(1)
	}
	if g.Snapshot().Pending != nil {
		t.Fatal("Grace delay never elapsed")
	}
}

func TestStartFirstWave(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	g.Start()

	s := g.Snapshot()
	if s.Wave == nil || s.Wave.Index != 1 {
		t.Fatalf("Wave = %+v, expected wave 1", s.Wave)
	}
	if s.Total != 2 || len(s.Wave.SetCodes) != 2 || len(s.Wave.History) != 2 {
		t.Errorf("Wave 1 = %+v, total %d", s.Wave, s.Total)
	}
	if g.Message() != "Wave 1" {
		t.Errorf("Message = %q", g.Message())
	}
	if g.Remaining() != 3 {
		t.Errorf("Remaining = %d, expected 3", g.Remaining())
	}
	if g.ID() != "waves" {
		t.Errorf("ID = %q", g.ID())
	}
}

func TestWavesNeverRepeatSets(t *testing.T) {
	g, sched, cps, results := newTestGame(t)
	g.Start()

	seen := map[string]int{}
	for wave := 1; wave <= 3; wave++ {
		s := g.Snapshot()
		if s.State != state.StatePlaying || s.Wave.Index != wave {
			t.Fatalf("Expected wave %d playing, got %s wave %+v", wave, s.State, s.Wave)
		}
		for _, c := range s.Wave.SetCodes {
			seen[c]++
		}
		clearWave(t, g, sched)
	}

	if len(seen) != len(testSets) {
		t.Errorf("Sets seen = %v, expected all %d", seen, len(testSets))
	}
	for code, n := range seen {
		if n != 1 {
			t.Errorf("Set %s assigned to %d waves", code, n)
		}
	}

	if g.State() != state.StateWon {
		t.Fatalf("State = %s after the last wave, expected won", g.State())
	}
	if len(*results) != 1 || (*results)[0].Wave != 3 {
		t.Fatalf("Results = %+v", *results)
	}
	// Every icon is answered within a tick or two of spawning
	if score := (*results)[0].Score; score < 5*295 || score > 5*300 {
		t.Errorf("Score = %d, expected close to %d", score, 5*300)
	}
	if len(*cps) != 2 {
		t.Fatalf("Checkpoints = %d, expected one per continued wave", len(*cps))
	}
}

func TestCheckpointAfterWave(t *testing.T) {
	g, sched, cps, _ := newTestGame(t)
	g.Start()
	first := g.Snapshot().Wave.SetCodes
	clearWave(t, g, sched)

	if len(*cps) != 1 {
		t.Fatalf("Checkpoints = %d, expected 1", len(*cps))
	}
	cp := (*cps)[0]
	if cp.Version != CheckpointVersion || cp.GameMode != Mode || cp.CurrentWave != 1 {
		t.Errorf("Checkpoint header = %+v", cp)
	}
	if cp.Lives != 3 || cp.Score != 600 {
		t.Errorf("Checkpoint lives %d score %d, expected 3 and 600", cp.Lives, cp.Score)
	}
	if strings.Join(cp.SetsShownHistory, ",") != strings.Join(first, ",") {
		t.Errorf("History = %v, expected %v", cp.SetsShownHistory, first)
	}
	if cp.Time().After(sched.Now()) {
		t.Errorf("Timestamp %v is in the future", cp.Time())
	}

	s := g.Snapshot()
	if s.Score != 600 || s.Wave.Index != 2 || len(s.CompletedSets) != 0 {
		t.Errorf("Wave 2 state: score %d, wave %d, completed %d", s.Score, s.Wave.Index, len(s.CompletedSets))
	}
	if g.Message() != "Wave 2" {
		t.Errorf("Message = %q", g.Message())
	}
}

func TestCheckpointMidWave(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	if _, ok := g.Checkpoint(); ok {
		t.Error("Idle game should have no checkpoint")
	}

	g.Start()
	cp, ok := g.Checkpoint()
	if !ok {
		t.Fatal("Expected a checkpoint")
	}
	if cp.CurrentWave != 0 || len(cp.SetsShownHistory) != 0 || cp.Lives != 3 {
		t.Errorf("Mid-wave checkpoint = %+v", cp)
	}
}

func TestRestore(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	cp := Checkpoint{
		Version:          CheckpointVersion,
		GameMode:         Mode,
		CurrentWave:      4,
		Lives:            2,
		Score:            1500,
		SetsShownHistory: []string{"A", "B", "C"},
		HintsDisabled:    true,
	}

	if err := g.Restore(cp); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	s := g.Snapshot()
	if s.State != state.StatePlaying || s.Wave.Index != 5 {
		t.Fatalf("Resumed at %s wave %+v, expected playing wave 5", s.State, s.Wave)
	}
	if s.Lives != 2 || s.Score != 1500 {
		t.Errorf("Lives %d score %d", s.Lives, s.Score)
	}
	for _, c := range s.Wave.SetCodes {
		if c == "A" || c == "B" || c == "C" {
			t.Errorf("Resumed wave repeats %s", c)
		}
	}
	if len(s.Wave.History) != 5 {
		t.Errorf("History = %v", s.Wave.History)
	}
	if !g.HintsDisabled() {
		t.Error("Hints setting not restored")
	}
}

func TestRestoreErrors(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	valid := Checkpoint{Version: CheckpointVersion, GameMode: Mode, CurrentWave: 1, Lives: 3}

	tests := []struct {
		name   string
		modify func(*Checkpoint)
		want   error
	}{
		{"future version", func(c *Checkpoint) { c.Version = 99 }, ErrCheckpointVersion},
		{"wrong mode", func(c *Checkpoint) { c.GameMode = "classic" }, ErrCheckpointInvalid},
		{"no lives", func(c *Checkpoint) { c.Lives = 0 }, ErrCheckpointInvalid},
		{"all shown", func(c *Checkpoint) { c.SetsShownHistory = sets.Codes(testSets) }, ErrCheckpointInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cp := valid
			tc.modify(&cp)
			if err := g.Restore(cp); !errors.Is(err, tc.want) {
				t.Errorf("Restore() error = %v, expected %v", err, tc.want)
			}
			if g.State() != state.StateIdle {
				t.Error("A failed restore must not start a game")
			}
		})
	}
}

func TestParseCheckpoint(t *testing.T) {
	data := []byte(`{"version":1,"timestamp":1700000000000,"gameMode":"waves","currentWave":3,` +
		`"lives":2,"score":900,"setsShownHistory":["A","B"],"hintsDisabled":true}`)

	cp, err := ParseCheckpoint(data)
	if err != nil {
		t.Fatalf("ParseCheckpoint: %v", err)
	}
	if cp.CurrentWave != 3 || cp.Lives != 2 || cp.Score != 900 || !cp.HintsDisabled || len(cp.SetsShownHistory) != 2 {
		t.Errorf("Parsed = %+v", cp)
	}
	if !cp.Time().Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("Time = %v", cp.Time())
	}

	if _, err := ParseCheckpoint([]byte(`{"version":2,"gameMode":"waves","lives":1}`)); !errors.Is(err, ErrCheckpointVersion) {
		t.Errorf("Expected version error, got %v", err)
	}
	if _, err := ParseCheckpoint([]byte(`not json`)); err == nil {
		t.Error("Expected decode error")
	}

	out, err := cp.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"gameMode"`, `"currentWave"`, `"setsShownHistory"`, `"hintsDisabled"`} {
		if !strings.Contains(string(out), key) {
			t.Errorf("Encoded checkpoint missing %s: %s", key, out)
		}
	}
}

func TestHandleClickStartsWaves(t *testing.T) {
	g, _, _, _ := newTestGame(t)
	g.HandleClick()
	if w := g.Snapshot().Wave; w == nil || w.Index != 1 {
		t.Fatal("Click should start wave mode")
	}
	g.HandleClick()
	if g.State() != state.StatePaused {
		t.Errorf("State = %s, expected paused", g.State())
	}
}
