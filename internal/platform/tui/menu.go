package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/setfall/internal/registry"
	"github.com/vovakirdan/setfall/internal/storage"
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	ModeID      string
	Title       string
	Description string
	Resume      bool // Continue from the latest checkpoint
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	highs     map[string]int
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user selects a mode
	openStats bool      // True if user asked for the statistics browser
}

// NewMenuModel creates a new menu model. Resumable modes with a saved
// checkpoint get an extra entry that continues it.
func NewMenuModel(h Host) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, 0, len(modes)+1)
	highs := make(map[string]int, len(modes))

	for _, info := range modes {
		items = append(items, MenuItem{
			ModeID:      info.ID,
			Title:       info.Title,
			Description: info.Description,
		})
		if h.Store == nil {
			continue
		}

		if high, err := h.Store.HighScore(info.ID); err == nil {
			highs[info.ID] = high
		}
		if !info.Resumable {
			continue
		}
		cp, err := h.Store.LatestCheckpoint(info.ID)
		switch {
		case err == nil:
			items = append(items, MenuItem{
				ModeID:      info.ID,
				Title:       fmt.Sprintf("%s: resume wave %d", info.Title, cp.CurrentWave+1),
				Description: fmt.Sprintf("Score %d, %d lives, saved %s", cp.Score, cp.Lives, cp.Time().Format("Jan 02 15:04")),
				Resume:      true,
			})
		case !errors.Is(err, storage.ErrNoCheckpoint):
			h.logger().Warn("could not load checkpoint", "mode", info.ID, "error", err)
		}
	}

	return MenuModel{
		items:     items,
		width:     h.Runtime.ScreenW,
		height:    h.Runtime.ScreenH,
		highs:     highs,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionStats:
		m.openStats = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  S E T F A L L  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Name each set before its icon lands", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item.Title
		if high := m.highs[item.ModeID]; high > 0 && !item.Resume {
			line += fmt.Sprintf("  (best %d)", high)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
		if i == m.cursor && item.Description != "" {
			b.WriteString(centerText(descStyle.Render(item.Description), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Navigate  |  Enter: Select  |  Tab: Stats  |  Q: Quit", m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStats returns true if user requested the statistics browser.
func (m MenuModel) WantsStats() bool {
	return m.openStats
}

// centerText centers text within width. Escape codes do not count.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
