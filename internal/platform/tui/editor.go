package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockbot/internal/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks"
	blockscore "github.com/vovakirdan/blockbot/internal/games/blocks/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
)

// EditorKeyMap defines the key bindings for the program editor.
// Letter keys are left to the text input.
type EditorKeyMap struct {
	Run  key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Run, k.Back, k.Quit}}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run program"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "levels"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// EditorModel lets the player type a program for one level.
type EditorModel struct {
	level     levels.Level
	rules     blocks.Rules
	input     textinput.Model
	help      help.Model
	keys      EditorKeyMap
	program   blockscore.Program
	err       error
	width     int
	height    int
	submitted bool
	goingBack bool
	quitting  bool
}

// NewEditorModel creates an editor for level, prefilled with text.
func NewEditorModel(level levels.Level, rules blocks.Rules, text string, width, height int) EditorModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "forward loop 2 [forward turnRight] jump use"
	ti.CharLimit = 512
	ti.Width = max(width-8, 20)
	ti.PromptStyle = theme.Prompt
	ti.TextStyle = theme.ProgramText
	ti.PlaceholderStyle = theme.Placeholder
	ti.SetValue(text)
	ti.CursorEnd()
	ti.Focus()

	m := EditorModel{
		level:  level,
		rules:  rules,
		input:  ti,
		help:   help.New(),
		keys:   DefaultEditorKeyMap(),
		width:  width,
		height: height,
	}
	m.compile()
	return m
}

// Init starts the cursor blinking.
func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the editor.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Run):
			m.compile()
			if m.err == nil && strings.TrimSpace(m.input.Value()) != "" {
				m.submitted = true
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-8, 20)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.compile()
	return m, cmd
}

// compile parses the current text and records the program or the error.
func (m *EditorModel) compile() {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.program, m.err = nil, nil
		return
	}
	m.program, m.err = m.rules.Compile(text, m.level.Level)
}

// View renders the editor.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("Level %d: %s", m.level.Index, m.level.Name)
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(centerText(title, m.width)))
	b.WriteString("\n")
	if m.level.Description != "" {
		b.WriteString(theme.MenuDescription.Render(centerText(m.level.Description, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderBoard())
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render("Blocks: " + allowedBlocks(m.level.Level)))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(theme.Error.Render(m.err.Error()))
	case m.program != nil:
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d blocks, %d actions when expanded",
			m.program.Blocks(), len(m.program.Flatten()))))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderBoard draws the level as loaded, centered.
func (m EditorModel) renderBoard() string {
	w, h := blocks.BoardSize(m.level.Level)
	screen := core.NewScreen(w, h)
	blocks.DrawBoard(screen, 0, 0, m.level.Level, nil)

	board := theme.Panel.Render(RenderScreen(screen))
	return lipgloss.PlaceHorizontal(max(m.width, lipgloss.Width(board)), lipgloss.Center, board)
}

// allowedBlocks lists the blocks a level offers.
func allowedBlocks(l *blockscore.Level) string {
	if len(l.Actions) == 0 {
		return "all"
	}
	names := make([]string, len(l.Actions))
	for i, k := range l.Actions {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// Program returns the compiled program once the player submitted it.
func (m EditorModel) Program() (blockscore.Program, bool) {
	if !m.submitted {
		return nil, false
	}
	return m.program, true
}

// Text returns the current program text.
func (m EditorModel) Text() string {
	return m.input.Value()
}

// Err returns the current compile error, if any.
func (m EditorModel) Err() error {
	return m.err
}

// IsGoingBack returns true if user wants to go back to the level picker.
func (m EditorModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m EditorModel) IsQuitting() bool {
	return m.quitting
}

// Level returns the level being edited.
func (m EditorModel) Level() levels.Level {
	return m.level
}
