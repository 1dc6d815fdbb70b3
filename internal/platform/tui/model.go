package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/setfall/internal/core"
	"github.com/vovakirdan/setfall/internal/game/engine"
	"github.com/vovakirdan/setfall/internal/game/state"
	"github.com/vovakirdan/setfall/internal/registry"
)

// chromeRows are the rows below the play field: answer box and status line.
const chromeRows = 2

var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// hud holds what the callbacks report between frames.
type hud struct {
	flash      string
	flashStyle lipgloss.Style
	flashUntil time.Time
}

func (h *hud) show(text string, style lipgloss.Style, until time.Time) {
	h.flash = text
	h.flashStyle = style
	h.flashUntil = until
}

// Model is the Bubble Tea model for one game. Ticks come from tea.Tick and
// are fed to a manual scheduler, so the engine and its callbacks only ever
// run on the Bubble Tea goroutine.
type Model struct {
	game   registry.Game
	mode   string
	sched  *engine.ManualScheduler
	screen *core.Screen
	input  textinput.Model
	hud    *hud
	rec    *recorder
	keys   *KeyMapper
	logger *log.Logger

	host       Host
	width      int
	height     int
	flashFor   time.Duration
	quitting   bool
	backToMenu bool
	openStats  bool
}

// NewModel creates a game of the given mode. With resume set, a resumable
// mode continues from its latest checkpoint; when there is none the game
// waits on its title screen.
func NewModel(h Host, mode string, resume bool) (Model, error) {
	if !registry.Exists(mode) {
		return Model{}, fmt.Errorf("unknown mode %q", mode)
	}

	rate := h.tickRate()
	sched := engine.NewManualScheduler(time.Now(), time.Second/time.Duration(rate))
	logger := h.logger()

	ti := textinput.New()
	ti.Placeholder = "type a set name"
	ti.Prompt = "> "
	ti.CharLimit = 80
	ti.Focus()

	m := Model{
		mode:     mode,
		sched:    sched,
		input:    ti,
		hud:      &hud{},
		rec:      newRecorder(h.Store, logger, mode, h.player()),
		keys:     NewKeyMapper(),
		logger:   logger,
		host:     h,
		width:    h.Runtime.ScreenW,
		height:   h.Runtime.ScreenH,
		flashFor: time.Duration(h.Config.Gameplay.MessageMs) * time.Millisecond,
	}
	m.screen = core.NewScreen(m.width, core.Max(0, m.height-chromeRows))

	game, err := registry.Create(mode, registry.Params{
		Options: engine.Options{
			Config:    h.Config,
			Sets:      h.Sets,
			Callbacks: m.callbacks(),
			Scheduler: sched,
			Images:    h.Images,
			Seed:      h.Runtime.Seed,
		},
		OnCheckpoint: m.rec.checkpoint,
	})
	if err != nil {
		return Model{}, err
	}
	m.game = game
	m.rec.attach(game)
	game.UpdateSize(fieldWidth(h.Config.Field.Height, m.screen.Width(), m.screen.Height()))

	if resume {
		if err := m.rec.resume(game); err != nil {
			logger.Warn("could not resume", "mode", mode, "error", err)
			m.hud.show("Nothing to resume", badStyle, sched.Now().Add(m.flashFor))
		}
	}
	return m, nil
}

func (m Model) callbacks() engine.Callbacks {
	h, rec, sched := m.hud, m.rec, m.sched
	until := func() time.Time { return sched.Now().Add(m.flashFor) }
	return engine.Callbacks{
		OnStateChange: rec.stateChanged,
		OnCorrectGuess: func(name string, points int) {
			h.show(fmt.Sprintf("+%d  %s", points, name), goodStyle, until())
		},
		OnMissed: func(name string) {
			h.show("Missed: "+name, badStyle, until())
		},
		OnMessage: func(text string, _ time.Duration) {
			m.logger.Debug("message", "text", text)
		},
		OnSetResult:    rec.setResult,
		OnGameComplete: rec.complete,
	}
}

// fieldWidth returns the world width that keeps icons square on a screen of
// cols x rows cells, given that a cell is about twice as tall as it is wide.
func fieldWidth(fieldHeight float64, cols, rows int) float64 {
	if cols <= 0 || rows <= 0 {
		return 0
	}
	return fieldHeight * float64(cols) / float64(2*rows)
}

// Init starts the tick loop and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.host.tickRate()))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		field := core.NewRect(0, 0, m.screen.Width(), m.screen.Height())
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && field.Contains(msg.X, msg.Y) {
			m.game.HandleClick()
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.sched.TickAt(time.Time(msg))
		return m, tickCmd(m.host.tickRate())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input. Keys without an action edit the answer.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answer := strings.TrimSpace(m.input.Value())

	switch m.keys.MapKey(msg, answer == "") {
	case core.ActionQuit:
		m.leave()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.leave()
		m.backToMenu = true
		return m, nil

	case core.ActionClick:
		m.game.HandleClick()
		return m, nil

	case core.ActionSubmit:
		m.submit(answer)
		return m, nil

	case core.ActionPause:
		switch m.game.State() {
		case state.StatePlaying:
			m.game.Pause()
		case state.StatePaused:
			m.game.Resume()
		default:
			m.leave()
			m.backToMenu = true
		}
		return m, nil

	case core.ActionSkip:
		m.game.SkipCurrentIcon()
		return m, nil

	case core.ActionToggleHints:
		m.game.UpdateHintsDisabled(!m.game.HintsDisabled())
		return m, nil

	case core.ActionStats:
		m.game.Pause()
		m.openStats = true
		return m, nil

	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
			return m, nil
		}
		m.hud.show("Saved "+path, helpStyle, m.sched.Now().Add(m.flashFor))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit forwards an answer. Outside play Enter starts a game instead.
func (m *Model) submit(answer string) {
	if m.game.State() != state.StatePlaying {
		m.input.SetValue("")
		m.game.HandleClick()
		return
	}
	if m.game.CheckAnswer(answer) {
		m.input.SetValue("")
		return
	}
	m.hud.show("No falling set is called "+answer, badStyle, m.sched.Now().Add(m.flashFor))
}

// handleResize fits the play field to the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, core.Max(0, msg.Height-chromeRows))
	m.input.Width = core.Max(10, msg.Width-4)
	m.game.UpdateSize(fieldWidth(m.host.Config.Field.Height, m.screen.Width(), m.screen.Height()))
	return m, nil
}

// leave stops the game, checkpointing a session in progress.
func (m Model) leave() {
	m.rec.leave()
	m.game.Destroy()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().MaxWidth(m.width).Render(m.statusLine()))
	return b.String()
}

func (m Model) statusLine() string {
	if m.hud.flash != "" && m.sched.Now().Before(m.hud.flashUntil) {
		return m.hud.flashStyle.Render(m.hud.flash)
	}
	hints := "on"
	if m.game.HintsDisabled() {
		hints = "off"
	}
	return helpStyle.Render(fmt.Sprintf(
		"enter answer/start  tab skip  esc pause  f2 hints (%s)  ctrl+s stats  ctrl+q menu", hints))
}

// saveScreenshot writes the current field as plain text under ~/.setfall/screenshots.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".setfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.mode, time.Now().Format("20060102_150405")))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Game returns the running game.
func (m Model) Game() registry.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// WantsStats returns true if the user asked for the statistics browser.
func (m Model) WantsStats() bool {
	return m.openStats
}

// ClearStats acknowledges a statistics request.
func (m Model) ClearStats() Model {
	m.openStats = false
	return m
}
