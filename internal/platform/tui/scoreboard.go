package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/setfall/internal/registry"
	"github.com/vovakirdan/setfall/internal/sets"
	"github.com/vovakirdan/setfall/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the page list sidebar
	sidebarWidth       = 20  // Width of page list sidebar
	maxRows            = 100 // Max rows to load per page
)

type pageKind int

const (
	pageScores pageKind = iota
	pageSets
	pageRecent
)

// page is one table in the browser.
type page struct {
	kind  pageKind
	mode  string // For score pages
	title string
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev page"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses high scores, per-set accuracy and recent sessions.
type ScoreboardModel struct {
	pages       []page
	cursor      int
	store       *storage.Store
	names       map[string]sets.Set
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(h Host) ScoreboardModel {
	modes := registry.List()
	pages := make([]page, 0, len(modes)+2)
	for _, info := range modes {
		pages = append(pages, page{kind: pageScores, mode: info.ID, title: info.Title})
	}
	pages = append(pages,
		page{kind: pageSets, title: "Hardest sets"},
		page{kind: pageRecent, title: "Recent games"},
	)

	hp := help.New()
	hp.ShowAll = false

	m := ScoreboardModel{
		pages:       pages,
		store:       h.Store,
		names:       sets.ByCode(h.Sets),
		keys:        DefaultScoreboardKeyMap(),
		help:        hp,
		width:       h.Runtime.ScreenW,
		height:      h.Runtime.ScreenH,
		showSidebar: h.Runtime.ScreenW >= minWidthForSidebar,
	}
	m.load()
	return m
}

// columns returns the columns for the current page, sized to the screen.
func (m *ScoreboardModel) columns() []table.Column {
	avail := m.width - 4
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}

	switch m.pages[m.cursor].kind {
	case pageSets:
		name := clampWidth(avail-8-8-8-10, 12, 32)
		return []table.Column{
			{Title: "Code", Width: 8},
			{Title: "Name", Width: name},
			{Title: "Named", Width: 8},
			{Title: "Missed", Width: 8},
			{Title: "Accuracy", Width: 10},
		}
	case pageRecent:
		return []table.Column{
			{Title: "Date", Width: 14},
			{Title: "Mode", Width: 9},
			{Title: "Player", Width: 10},
			{Title: "Score", Width: 8},
			{Title: "Result", Width: 8},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 12},
			{Title: "Date", Width: clampWidth(avail-22, 14, 20)},
		}
	}
}

// clampWidth clamps v into [lo, hi].
func clampWidth(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// createTable creates a table for the current page.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current page's rows and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.rows = nil
	if m.store != nil {
		m.rows = m.query(m.pages[m.cursor])
	}
	m.table = m.createTable()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) query(p page) []table.Row {
	var rows []table.Row
	switch p.kind {
	case pageScores:
		scores, err := m.store.TopScores(p.mode, maxRows)
		if err != nil {
			return nil
		}
		for i, s := range scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}

	case pageSets:
		results, err := m.store.HardestSets(maxRows, 1)
		if err != nil {
			return nil
		}
		for _, r := range results {
			rows = append(rows, table.Row{
				r.Code,
				m.names[r.Code].Name,
				fmt.Sprintf("%d", r.Success),
				fmt.Sprintf("%d", r.Failure),
				fmt.Sprintf("%.0f%%", 100*float64(r.Success)/float64(r.Attempts())),
			})
		}

	case pageRecent:
		sessions, err := m.store.RecentSessions(maxRows)
		if err != nil {
			return nil
		}
		for _, s := range sessions {
			result := "ended"
			switch {
			case s.EndedAt.IsZero():
				result = "-"
			case s.Won:
				result = "won"
			}
			rows = append(rows, table.Row{
				s.StartedAt.Format("Jan 02 15:04"),
				s.Mode,
				s.Player,
				fmt.Sprintf("%d", s.Score),
				result,
			})
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextPage), key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevPage), key.Matches(msg, m.keys.Left):
			m.cursor = (m.cursor + len(m.pages) - 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "STATISTICS - " + m.pages[m.cursor].title
	if m.pages[m.cursor].kind == pageScores {
		title = "HIGH SCORES - " + m.pages[m.cursor].title
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a sidebar listing the pages.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.pages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(p.title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders page tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.pages))
	for i, p := range m.pages {
		name := truncate(p.title, 10)
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.pages[m.cursor].title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nPlay a game to fill this page!")
	}

	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
