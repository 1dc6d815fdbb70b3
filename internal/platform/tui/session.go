package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenStats
)

// SessionModel manages the full flow: menu -> game -> menu, with the
// statistics browser reachable from both.
type SessionModel struct {
	host     Host
	current  screen
	menu     MenuModel
	game     *Model
	stats    ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session that opens on the menu.
func NewSessionModel(h Host) SessionModel {
	return SessionModel{
		host:    h,
		current: screenMenu,
		menu:    NewMenuModel(h),
	}
}

// NewGameSession creates a session that opens straight into a game.
func NewGameSession(h Host, mode string, resume bool) (SessionModel, error) {
	game, err := NewModel(h, mode, resume)
	if err != nil {
		return SessionModel{}, err
	}
	return SessionModel{
		host:    h,
		current: screenGame,
		game:    &game,
	}, nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.current == screenGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.host.Runtime.ScreenW = wsm.Width
		m.host.Runtime.ScreenH = wsm.Height
		// Background screens learn the size too
		if m.game != nil && m.current != screenGame {
			next, _ := m.game.Update(msg)
			g := next.(Model)
			m.game = &g
		}
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsStats() {
		m.menu.openStats = false
		return m.openStats()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.menu.selected = nil
		game, err := NewModel(m.host, selected.ModeID, selected.Resume)
		if err != nil {
			m.host.logger().Error("could not create game", "mode", selected.ModeID, "error", err)
			return m, nil
		}
		m.game = &game
		m.current = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.current = screenMenu
		m.menu = NewMenuModel(m.host)
		return m, m.menu.Init()
	}

	if m.game.WantsStats() {
		g := m.game.ClearStats()
		m.game = &g
		return m.openStats()
	}

	return m, cmd
}

// updateStats handles updates in the statistics browser. Leaving it returns
// to the game when one is running, otherwise to the menu. Game ticks keep
// flowing to the paused game so the tick loop survives.
func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok && m.game != nil {
		next, cmd := m.game.Update(msg)
		g := next.(Model)
		m.game = &g
		return m, cmd
	}

	next, cmd := m.stats.Update(msg)
	if stats, ok := next.(ScoreboardModel); ok {
		m.stats = stats
	}

	if m.stats.IsQuitting() {
		if m.game != nil {
			m.game.leave()
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.stats.IsGoingBack() {
		if m.game != nil {
			m.current = screenGame
			return m, nil
		}
		m.current = screenMenu
		m.menu = NewMenuModel(m.host)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) openStats() (tea.Model, tea.Cmd) {
	m.stats = NewScoreboardModel(m.host)
	m.current = screenStats
	return m, m.stats.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// Run runs a local session. An empty mode opens the menu; otherwise the
// game starts directly.
func Run(h Host, mode string, resume bool) error {
	var model tea.Model = NewSessionModel(h)
	if mode != "" {
		s, err := NewGameSession(h, mode, resume)
		if err != nil {
			return err
		}
		model = s
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
