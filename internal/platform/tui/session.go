package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbot/internal/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks"
	blockscore "github.com/vovakirdan/blockbot/internal/games/blocks/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
)

// sessionScreen identifies the active screen of a session.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenHistory
	screenEditor
	screenPlay
)

// SessionOptions selects where a session starts.
type SessionOptions struct {
	Level    int    // Open the editor for this level index; 0 starts at the picker
	Program  string // Initial program text for Level
	Autoplay bool   // Start playback immediately when Program compiles
}

// SessionModel manages the full session flow:
// picker -> editor -> playback -> picker, with the run history beside the picker.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	settings Settings
	config   core.RuntimeConfig
	screen   sessionScreen
	current  levels.Level
	drafts   map[int]string // Program text per level index
	menu     MenuModel
	history  ScoreboardModel
	editor   EditorModel
	play     PlayModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(settings Settings, cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	m := SessionModel{
		settings: settings,
		config:   cfg,
		drafts:   make(map[int]string),
		menu:     NewMenuModel(settings, cfg.ScreenW, cfg.ScreenH),
	}

	if opts.Level == 0 {
		return m
	}
	lvl, ok := m.findLevel(opts.Level)
	if !ok {
		return m
	}
	m.menu.Select(opts.Level)
	m.drafts[opts.Level] = opts.Program
	m.openEditor(lvl)

	if opts.Autoplay {
		if program, err := settings.Rules.Compile(opts.Program, lvl.Level); err == nil && len(program) > 0 {
			m.openPlay(program)
		}
	}
	return m
}

func (m SessionModel) findLevel(index int) (levels.Level, bool) {
	for _, lvl := range m.settings.Levels {
		if lvl.Index == index {
			return lvl, true
		}
	}
	return levels.Level{}, false
}

// Init initializes the active screen.
func (m SessionModel) Init() tea.Cmd {
	switch m.screen {
	case screenEditor:
		return m.editor.Init()
	case screenPlay:
		return m.play.Init()
	default:
		return m.menu.Init()
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenHistory:
		return m.updateHistory(msg)
	case screenEditor:
		return m.updateEditor(msg)
	case screenPlay:
		return m.updatePlay(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in the level picker.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		start := 0
		if items := m.menu.Items(); len(items) > 0 {
			start = items[m.menu.cursor].Level.Index
		}
		m.history = NewScoreboardModel(m.settings, start, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		m.menu.openHistory = false
		return m, m.history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		m.menu.selected = nil
		m.openEditor(selected.Level)
		return m, m.editor.Init()
	}

	return m, cmd
}

// updateHistory handles updates when showing the run history.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newHistory, cmd := m.history.Update(msg)
	if historyModel, ok := newHistory.(ScoreboardModel); ok {
		m.history = historyModel
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.history.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateEditor handles updates when editing a program.
func (m SessionModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	newEditor, cmd := m.editor.Update(msg)
	if editorModel, ok := newEditor.(EditorModel); ok {
		m.editor = editorModel
	}
	m.drafts[m.current.Index] = m.editor.Text()

	if m.editor.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.editor.IsGoingBack() {
		return m.backToMenu()
	}
	if program, ok := m.editor.Program(); ok {
		m.openPlay(program)
		return m, m.play.Init()
	}
	return m, cmd
}

// updatePlay handles updates during playback.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newPlay, cmd := m.play.Update(msg)
	if playModel, ok := newPlay.(PlayModel); ok {
		m.play = playModel
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.BackToMenu() {
		return m.backToMenu()
	}
	if m.play.WantsEdit() {
		m.openEditor(m.current)
		return m, m.editor.Init()
	}
	return m, cmd
}

// backToMenu rebuilds the picker so completion marks reflect new runs.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.settings, m.config.ScreenW, m.config.ScreenH)
	if m.current.Level != nil {
		m.menu.Select(m.current.Index)
	}
	m.screen = screenMenu
	return m, m.menu.Init()
}

func (m *SessionModel) openEditor(lvl levels.Level) {
	m.current = lvl
	m.editor = NewEditorModel(lvl, m.settings.Rules, m.drafts[lvl.Index], m.config.ScreenW, m.config.ScreenH)
	m.screen = screenEditor
}

func (m *SessionModel) openPlay(program blockscore.Program) {
	game := blocks.New(m.current.Level, program, m.settings.Options)
	m.play = NewPlayModel(game, m.settings, m.config)
	m.screen = screenPlay
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenHistory:
		return m.history.View()
	case screenEditor:
		return m.editor.View()
	case screenPlay:
		return m.play.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs a local interactive session until the user quits.
func RunSession(settings Settings, cfg core.RuntimeConfig, opts SessionOptions) error {
	model := NewSessionModel(settings, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
