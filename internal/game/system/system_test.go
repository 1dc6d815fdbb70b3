package system

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/setfall/internal/config"
	"github.com/vovakirdan/setfall/internal/game/entity"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/sets"
)

var testSets = []sets.Set{
	{Name: "Alpha", Code: "A", IconURL: "a.png"},
	{Name: "Beta", Code: "B", IconURL: "b.png"},
	{Name: "Gamma", Code: "C", IconURL: "c.png"},
}

type recordingImages struct {
	urls []string
}

func (r *recordingImages) Request(url string) {
	r.urls = append(r.urls, url)
}

func testEnv(seed int64) Env {
	return Env{
		Config: config.DefaultGameConfig(),
		Sets:   testSets,
		Rand:   rand.New(rand.NewSource(seed)),
		Now:    time.Unix(1000, 0),
		Speed:  1,
	}
}

func playing() state.GameStateData {
	return state.New(nil).BeginSession(state.Session{Total: len(testSets), Lives: 3})
}

func placeIcon(s state.GameStateData, code string, x, y float64) (state.GameStateData, entity.Icon) {
	for _, set := range testSets {
		if set.Code == code {
			ic := entity.NewIcon(s.NextID, set, x, y, 1)
			return s.AddIcon(ic), ic
		}
	}
	panic("unknown code " + code)
}

func TestCanSpawnGate(t *testing.T) {
	env := testEnv(1)
	delay := time.Duration(env.Config.Spawn.DelayMs) * time.Millisecond

	tests := []struct {
		name   string
		modify func(state.GameStateData) state.GameStateData
		want   bool
	}{
		{"fresh session", func(s state.GameStateData) state.GameStateData { return s }, true},
		{"paused", func(s state.GameStateData) state.GameStateData { return s.WithState(state.StatePaused) }, false},
		{"idle", func(s state.GameStateData) state.GameStateData { return s.WithState(state.StateIdle) }, false},
		{"no lives", func(s state.GameStateData) state.GameStateData { s.Lives = 0; return s }, false},
		{"blocked", func(s state.GameStateData) state.GameStateData { s.SpawnBlocked = true; return s }, false},
		{"at concurrency cap", func(s state.GameStateData) state.GameStateData {
			s, _ = placeIcon(s, "A", 100, 0)
			return s
		}, false},
		{"resolved icons do not count", func(s state.GameStateData) state.GameStateData {
			s, ic := placeIcon(s, "A", 100, 0)
			return s.ReplaceIcon(ic.Fail(10))
		}, true},
		{"within delay", func(s state.GameStateData) state.GameStateData { s.LastSpawn = env.Now.Add(-delay); return s }, false},
		{"after delay", func(s state.GameStateData) state.GameStateData {
			s.LastSpawn = env.Now.Add(-delay - time.Millisecond)
			return s
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanSpawn(tc.modify(playing()), env); got != tc.want {
				t.Errorf("CanSpawn() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestSpawnCreatesIcon(t *testing.T) {
	env := testEnv(3)
	images := &recordingImages{}
	env.Images = images

	s, events := Spawn(playing(), env)

	if len(s.Icons) != 1 || len(events) != 1 || events[0].Kind != EventSpawned {
		t.Fatalf("Expected one spawned icon, got %d icons, %v", len(s.Icons), events)
	}
	ic := s.Icons[0]
	if ic.Y != -env.Config.Field.IconSize {
		t.Errorf("Spawn y = %v, expected %v", ic.Y, -env.Config.Field.IconSize)
	}
	pad := Padding(env)
	if ic.X < pad || ic.X > env.Config.Field.Width-env.Config.Field.IconSize-pad {
		t.Errorf("Spawn x = %v outside padded field", ic.X)
	}
	if ic.Speed < 1 || ic.Speed > 1+env.Config.Physics.SpeedJitter {
		t.Errorf("Speed = %v outside jitter range", ic.Speed)
	}
	if !s.LastSpawn.Equal(env.Now) {
		t.Error("LastSpawn should be updated")
	}
	if len(images.urls) != 1 || images.urls[0] != ic.IconURL {
		t.Errorf("Image request = %v, expected %q", images.urls, ic.IconURL)
	}

	// Gate closes at the cap
	s2, events := Spawn(s, env)
	if len(s2.Icons) != 1 || events != nil {
		t.Error("Spawn should respect the concurrency cap")
	}
}

func TestSpawnSkipsCompletedSets(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		env := testEnv(seed)
		s := playing().WithCompleted("A").WithCompleted("C")

		s, _ = Spawn(s, env)
		if got := s.Icons[0].Code; got != "B" {
			t.Fatalf("seed %d: spawned %s, expected the only remaining set B", seed, got)
		}
	}
}

func TestCandidatesWrapAround(t *testing.T) {
	env := testEnv(1)
	s := playing().WithCompleted("A").WithCompleted("B").WithCompleted("C")

	pool, next := Candidates(s, env)
	if len(pool) != 3 {
		t.Errorf("Pool after wraparound = %d sets, expected 3", len(pool))
	}
	if len(next.CompletedSets) != 0 {
		t.Error("Completed sets should be cleared on wraparound")
	}
	if len(s.CompletedSets) != 3 {
		t.Error("Wraparound must not mutate the input state")
	}
}

func TestSpawnNeverDuplicatesFallingSet(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		env := testEnv(seed)
		env.Config.Spawn.MaxActive = 3
		env.Sets = testSets[:2]
		s := state.New(nil).BeginSession(state.Session{Total: 2, Lives: 3})

		for i := 0; i < 3; i++ {
			s, _ = Spawn(s, env)
			env.Now = env.Now.Add(time.Second)
		}

		byCode := map[string]int{}
		for _, ic := range s.ActiveIcons() {
			byCode[ic.Code]++
		}
		if len(byCode) != 2 || byCode["A"] != 1 || byCode["B"] != 1 {
			t.Fatalf("seed %d: active by code = %v, expected one each of A and B", seed, byCode)
		}

		next, events, ok := CheckAnswer(s, "alpha", env)
		if !ok {
			t.Fatalf("seed %d: alpha did not match", seed)
		}
		destroyed := 0
		for _, ic := range next.Icons {
			if ic.Resolved() && ic.Kind() == entity.AnimationSuccess {
				destroyed++
			}
		}
		if destroyed != 1 || len(next.ActiveIcons()) != 1 || len(events) == 0 {
			t.Errorf("seed %d: %d icons destroyed, %d still falling", seed, destroyed, len(next.ActiveIcons()))
		}
		if _, _, ok := CheckAnswer(next, "alpha", env); ok {
			t.Errorf("seed %d: a second alpha matched", seed)
		}

		// Once Alpha resolves the remaining slot stays empty until B is done
		s, _ = Spawn(next, env)
		if len(s.ActiveIcons()) != 1 {
			t.Errorf("seed %d: spawned a duplicate while B is falling", seed)
		}
	}
}

func TestSpawnXKeepsClearance(t *testing.T) {
	violations := 0
	for seed := int64(0); seed < 50; seed++ {
		env := testEnv(seed)
		s, _ := placeIcon(playing(), "A", 376, 0) // Middle of the field, in the top band

		x := SpawnX(s, env)
		if math.Abs(x-376) < 2*env.Config.Field.IconSize {
			violations++
		}
	}
	// Ten retries make an overlap possible but vanishingly rare
	if violations > 1 {
		t.Errorf("%d of 50 spawns overlapped an icon in the top band", violations)
	}
}

func TestSpawnXNeverStalls(t *testing.T) {
	env := testEnv(1)
	env.Config.Field.Width = 300 // Range is [45, 207]; one icon at 126 covers all of it
	s, _ := placeIcon(playing(), "A", 126, 0)

	x := SpawnX(s, env)
	pad := Padding(env)
	if x < pad || x > env.Config.Field.Width-env.Config.Field.IconSize-pad {
		t.Errorf("Fallback x = %v outside the padded field", x)
	}
}

func TestSpawnXIgnoresIconsBelowBand(t *testing.T) {
	env := testEnv(1)
	env.Config.Field.Width = 300
	s, _ := placeIcon(playing(), "A", 126, 400) // Far below the top band

	if crowded(s, 126, 96, env.Config.Field.TopBand*env.Config.Field.Height) {
		t.Error("Icons below the top band should not block placement")
	}
}

func TestPadding(t *testing.T) {
	env := testEnv(1)
	if got := Padding(env); got != 120 {
		t.Errorf("Padding(800) = %v, expected 120", got)
	}
	env.Config.Field.Width = 2000
	if got := Padding(env); got != 150 {
		t.Errorf("Padding(2000) = %v, expected the 150 cap", got)
	}
}

func TestGroundReached(t *testing.T) {
	cfg := config.DefaultGameConfig()
	limit := GroundLine(cfg) + cfg.Field.TextPadding + cfg.Field.TextOffset // 398

	tests := []struct {
		y    float64
		want bool
	}{
		{limit - 0.1, false},
		{limit, true},
		{limit + 10, true},
		{0, false},
	}
	for _, tc := range tests {
		ic := entity.Icon{Y: tc.y}
		if got := GroundReached(ic, cfg); got != tc.want {
			t.Errorf("GroundReached(y=%v) = %v, expected %v", tc.y, got, tc.want)
		}
	}
}

func TestCollideCostsOneLifePerIcon(t *testing.T) {
	env := testEnv(1)
	s, a := placeIcon(playing(), "A", 100, 500)
	s, _ = placeIcon(s, "B", 300, 10)

	s, events := Collide(s, env)

	if s.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", s.Lives)
	}
	if len(events) != 1 || events[0].Kind != EventMissed || events[0].Icon.ID != a.ID {
		t.Fatalf("Events = %+v, expected one miss for %d", events, a.ID)
	}
	if !s.Icons[0].Failed || s.Icons[0].AnimTimer != env.Config.Gameplay.FailureTicks {
		t.Error("Missed icon should be failed with the failure animation")
	}
	if !s.Icons[1].Active() {
		t.Error("Airborne icon should stay active")
	}

	// Already failed icons are never counted again
	s, events = Collide(s, env)
	if s.Lives != 2 || len(events) != 0 {
		t.Errorf("Second collide changed lives to %d with %d events", s.Lives, len(events))
	}
}

func TestCollideSchedulesGameOver(t *testing.T) {
	env := testEnv(1)
	s := playing()
	s.Lives = 1
	s, _ = placeIcon(s, "A", 100, 500)

	s, events := Collide(s, env)

	if s.Lives != 0 || s.ReportedLives() != 0 {
		t.Errorf("Lives = %d", s.Lives)
	}
	if s.Pending == nil || s.Pending.Target != state.StateGameOver {
		t.Fatal("Game over should be pending")
	}
	wantDue := env.Now.Add(time.Duration(env.Config.Gameplay.GraceMs) * time.Millisecond)
	if !s.Pending.DueAt.Equal(wantDue) {
		t.Errorf("DueAt = %v, expected %v", s.Pending.DueAt, wantDue)
	}
	if s.State != state.StatePlaying {
		t.Error("State should not change before the grace delay")
	}
	if len(events) != 2 || events[1].Kind != EventScheduled {
		t.Errorf("Events = %+v", events)
	}
}

func TestSkip(t *testing.T) {
	env := testEnv(1)
	s, first := placeIcon(playing(), "A", 100, 50)
	s, _ = placeIcon(s, "B", 400, 10)

	s, events := Skip(s, env)
	if len(events) != 1 || events[0].Icon.ID != first.ID {
		t.Fatalf("Skip should fail the oldest icon, got %+v", events)
	}
	if s.Lives != 2 {
		t.Errorf("Lives = %d, expected 2", s.Lives)
	}

	paused := s.WithState(state.StatePaused)
	if _, events := Skip(paused, env); events != nil {
		t.Error("Skip should do nothing unless playing")
	}
}

func TestPointsBounds(t *testing.T) {
	cfg := config.DefaultGameConfig()

	if got := Points(entity.Icon{Y: -cfg.Field.IconSize}, cfg); got != 300 {
		t.Errorf("Points at spawn = %d, expected 300", got)
	}
	if got := Points(entity.Icon{Y: GroundLine(cfg) - cfg.Field.IconSize}, cfg); got != 100 {
		t.Errorf("Points at ground = %d, expected 100", got)
	}
	if got := Points(entity.Icon{Y: 1000}, cfg); got != 100 {
		t.Errorf("Points below ground = %d, expected 100", got)
	}
	if got := Points(entity.Icon{Y: -500}, cfg); got != 300 {
		t.Errorf("Points above spawn = %d, expected 300", got)
	}
}

func TestPointsMonotone(t *testing.T) {
	cfg := config.DefaultGameConfig()
	prev := math.MaxInt
	for y := -60.0; y <= 420; y += 0.5 {
		p := Points(entity.Icon{Y: y}, cfg)
		if p > prev {
			t.Fatalf("Points increased from %d to %d at y=%v", prev, p, y)
		}
		if p < MinPoints || p > MinPoints+BonusPoints {
			t.Fatalf("Points %d out of bounds at y=%v", p, y)
		}
		prev = p
	}
}

func TestHintLevel(t *testing.T) {
	th := [4]float64{0.20, 0.35, 0.55, 0.75}
	tests := []struct {
		f    float64
		want int
	}{
		{0, -1}, {0.19, -1}, {0.20, 0}, {0.34, 0}, {0.35, 1}, {0.55, 2}, {0.74, 2}, {0.75, 3}, {1, 3},
	}
	for _, tc := range tests {
		if got := HintLevel(tc.f, th); got != tc.want {
			t.Errorf("HintLevel(%v) = %d, expected %d", tc.f, got, tc.want)
		}
	}
}

func TestRevealCount(t *testing.T) {
	tests := []struct {
		hidden int
		want   [3]int
	}{
		{1, [3]int{0, 0, 0}},
		{3, [3]int{1, 1, 2}},
		{5, [3]int{2, 3, 4}},
		{8, [3]int{3, 5, 7}},
		{20, [3]int{7, 13, 17}},
		{40, [3]int{14, 26, 34}},
	}
	for _, tc := range tests {
		for lvl := 1; lvl <= 3; lvl++ {
			if got := RevealCount(tc.hidden, lvl); got != tc.want[lvl-1] {
				t.Errorf("RevealCount(%d, %d) = %d, expected %d", tc.hidden, lvl, got, tc.want[lvl-1])
			}
		}
		if RevealCount(tc.hidden, 0) != 0 {
			t.Errorf("Level 0 should reveal nothing for %d hidden", tc.hidden)
		}
	}
}

func TestHintTextLevelZero(t *testing.T) {
	always := []string{"classic", "core set", "edition"}

	if got := HintText("Mercadian Masques", "MMQ", 0, always, 1); got != "(MMQ)" {
		t.Errorf("Level 0 hint = %q, expected %q", got, "(MMQ)")
	}
	if got := HintText("Fourth Edition", "4ED", 0, always, 1); got != "______ Edition (4ED)" {
		t.Errorf("Level 0 hint with keyword = %q", got)
	}
	if got := HintText("Core Set 2019", "M19", 0, always, 1); got != "Core Set ____ (M19)" {
		t.Errorf("Level 0 hint with multi-word keyword = %q", got)
	}
	if got := HintText("Mirage", "MIR", -1, always, 1); got != "" {
		t.Errorf("Level -1 should produce no hint, got %q", got)
	}
}

func TestHintTextExemptCharacters(t *testing.T) {
	got := HintText("Ravnica: City of Guilds", "RAV", 1, nil, 7)
	masked := strings.TrimSuffix(got, " (RAV)")

	if len([]rune(masked)) != len([]rune("Ravnica: City of Guilds")) {
		t.Fatalf("Masked text %q changed length", masked)
	}
	for i, r := range []rune("Ravnica: City of Guilds") {
		m := []rune(masked)[i]
		if exempt(r) && m != r {
			t.Errorf("Exempt %q at %d was masked", r, i)
		}
		if m != HintMask && m != r {
			t.Errorf("Position %d shows %q, expected %q or mask", i, m, r)
		}
	}
}

func TestHintTextGrowsAndNeverCompletes(t *testing.T) {
	names := []string{"Urza's Saga", "Ice Age", "Rise of the Eldrazi", "Champions of Kamigawa", "Dominaria", "Exo"}
	for _, name := range names {
		prev := HintText(name, "X", 0, nil, 42)
		prevRevealed := 0
		for lvl := 1; lvl <= 3; lvl++ {
			got := HintText(name, "X", lvl, nil, 42)
			masked := []rune(strings.TrimSuffix(got, " (X)"))
			revealed := 0
			for i, r := range []rune(name) {
				if masked[i] == r && !exempt(r) {
					revealed++
				}
			}
			if revealed < prevRevealed {
				t.Errorf("%s: level %d revealed %d < %d", name, lvl, revealed, prevRevealed)
			}
			if !strings.ContainsRune(string(masked), HintMask) {
				t.Errorf("%s: level %d revealed the whole name: %q", name, lvl, got)
			}
			// Anything visible at the previous level stays visible
			if lvl > 1 {
				pm := []rune(strings.TrimSuffix(prev, " (X)"))
				for i := range pm {
					if pm[i] != HintMask && masked[i] == HintMask {
						t.Errorf("%s: position %d hidden again at level %d", name, i, lvl)
					}
				}
			}
			prev, prevRevealed = got, revealed
		}
	}
}

func TestHintTextStartsWithInitials(t *testing.T) {
	got := HintText("Shards of Alara", "ALA", 1, nil, 3)
	if !strings.HasPrefix(got, "S") {
		t.Errorf("First reveal should be a word initial, got %q", got)
	}
}

func TestCheckAnswerMatch(t *testing.T) {
	env := testEnv(1)
	s, a := placeIcon(playing(), "A", 100, -env.Config.Field.IconSize)
	s, b := placeIcon(s, "B", 400, 100)

	next, events, ok := CheckAnswer(s, "  ALPHA \t", env)
	if !ok {
		t.Fatal("Expected a match")
	}
	if next.Score != 300 || next.Correct != 1 {
		t.Errorf("Score = %d, Correct = %d", next.Score, next.Correct)
	}
	if !next.CompletedSets["A"] || len(next.CompletedSets) != 1 {
		t.Errorf("CompletedSets = %v", next.CompletedSets)
	}
	for _, ic := range next.Icons {
		switch ic.ID {
		case a.ID:
			if !ic.Destroyed || ic.AnimTimer != env.Config.Gameplay.SuccessTicks {
				t.Error("Matched icon should be destroyed with the success animation")
			}
		case b.ID:
			if ic != b {
				t.Error("Other icons must not change")
			}
		}
	}
	if len(events) != 1 || events[0].Kind != EventCorrect || events[0].Points != 300 {
		t.Errorf("Events = %+v", events)
	}
	if s.Score != 0 || !s.Icons[0].Active() {
		t.Error("CheckAnswer must not mutate its input")
	}
}

func TestCheckAnswerNoMatch(t *testing.T) {
	env := testEnv(1)
	s, _ := placeIcon(playing(), "A", 100, 0)

	tests := []struct {
		name  string
		state state.GameStateData
		text  string
	}{
		{"wrong name", s, "beta"},
		{"empty", s, "   "},
		{"partial", s, "alp"},
		{"paused", s.WithState(state.StatePaused), "alpha"},
		{"already resolved", s.ReplaceIcon(s.Icons[0].Fail(5)), "alpha"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, events, ok := CheckAnswer(tc.state, tc.text, env)
			if ok || events != nil || next.Score != tc.state.Score {
				t.Errorf("Expected no change, got ok=%v events=%v", ok, events)
			}
		})
	}
}

func TestCheckAnswerSchedulesWin(t *testing.T) {
	env := testEnv(1)
	s := playing().WithCompleted("A").WithCompleted("B")
	s, _ = placeIcon(s, "C", 100, 0)

	s, events, ok := CheckAnswer(s, "gamma", env)
	if !ok {
		t.Fatal("Expected a match")
	}
	if s.Pending == nil || s.Pending.Target != state.StateWon {
		t.Fatal("Win should be pending")
	}
	if s.State != state.StatePlaying {
		t.Error("Win must wait for the grace delay")
	}
	if !s.SpawnBlocked {
		t.Error("Spawning should stop once the win is scheduled")
	}
	if len(events) != 2 || events[1].Target != state.StateWon {
		t.Errorf("Events = %+v", events)
	}
}

func TestCheckAnswerTracksWave(t *testing.T) {
	env := testEnv(1)
	s := state.New(nil).BeginSession(state.Session{Total: 3, Lives: 3, Wave: &state.WaveState{Index: 2}})
	s, _ = placeIcon(s, "A", 100, 0)

	next, _, _ := CheckAnswer(s, "alpha", env)
	if next.Wave.Completed != 1 || s.Wave.Completed != 0 {
		t.Error("Wave completion should be tracked on a copy")
	}
}
