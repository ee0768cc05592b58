package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
	"github.com/vovakirdan/blockbot/internal/storage"
)

// MenuItem represents a selectable level in the picker.
type MenuItem struct {
	Level      levels.Level
	Completed  bool
	BestBlocks int // 0 when never completed
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items         []MenuItem
	pack          string
	cursor        int
	width         int
	height        int
	keyMapper     *KeyMapper
	quitting      bool
	selected      *MenuItem // Set when user selects a level
	openHistory   bool      // True if user pressed Tab for run history
	journalFailed bool
}

// NewMenuModel creates a level picker for the session's levels. Completion
// marks come from the run journal when one is configured.
func NewMenuModel(settings Settings, width, height int) MenuModel {
	m := MenuModel{
		pack:      settings.Pack,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}

	var stats map[int]*storage.LevelStats
	done := make(map[int]bool)
	if settings.Store != nil {
		var err error
		stats, err = settings.Store.AllLevelStats(settings.Pack)
		if err != nil {
			m.journalFailed = true
		}
		completed, err := settings.Store.CompletedLevels(settings.Pack, settings.Player)
		if err != nil {
			m.journalFailed = true
		}
		for _, idx := range completed {
			done[idx] = true
		}
	}

	m.items = make([]MenuItem, 0, len(settings.Levels))
	for _, lvl := range settings.Levels {
		item := MenuItem{Level: lvl, Completed: done[lvl.Index]}
		if st, ok := stats[lvl.Index]; ok && st.Completions > 0 {
			item.BestBlocks = st.BestBlocks
		}
		m.items = append(m.items, item)
	}
	return m
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
	case MenuActionQuit:
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

	case MenuActionHistory:
		m.openHistory = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Render(centerText("  B L O C K B O T  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(centerText(fmt.Sprintf("Select a level (%s)", m.pack), m.width)))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(theme.Empty.Render("No levels found."))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		style := theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = theme.MenuItemActive
		}

		mark := "  "
		if item.Completed {
			mark = "✓ "
		}
		line := fmt.Sprintf("%s%s%2d. %-24s", cursor, mark, item.Level.Index, item.Level.Name)
		if item.BestBlocks > 0 {
			line += fmt.Sprintf(" best: %d blocks", item.BestBlocks)
		}
		if item.Completed && i != m.cursor {
			style = theme.MenuItemDone
		}
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		if desc := m.items[m.cursor].Level.Description; desc != "" {
			b.WriteString("\n")
			b.WriteString(theme.MenuDescription.Render(centerText(desc, m.width)))
			b.WriteString("\n")
		}
	}

	if m.journalFailed {
		b.WriteString("\n")
		b.WriteString(theme.Error.Render(centerText("run journal unavailable", m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: History  |  Q: Quit"
	b.WriteString(theme.Help.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Select moves the cursor to the level with the given index.
// Returns false if the level is not in the menu.
func (m *MenuModel) Select(index int) bool {
	for i, item := range m.items {
		if item.Level.Index == index {
			m.cursor = i
			return true
		}
	}
	return false
}

// Items returns the menu entries.
func (m MenuModel) Items() []MenuItem {
	return m.items
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
