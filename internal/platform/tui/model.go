package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockbot/internal/config"
	"github.com/vovakirdan/blockbot/internal/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks"
	blockscore "github.com/vovakirdan/blockbot/internal/games/blocks/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks/levels"
	"github.com/vovakirdan/blockbot/internal/storage"
)

// Settings bundles what the picker, editor and playback screens share.
type Settings struct {
	Pack    string             // Registered pack ID, recorded with every run
	Levels  []levels.Level     // Levels offered by the picker, sorted by index
	Store   *storage.Store     // Optional run journal
	Player  string             // Recorded with every run
	Options blockscore.Options // Facing and clock; pacing comes from the runtime config
	Rules   blocks.Rules
	Logger  *log.Logger
}

// NewSettings builds settings from the application configuration.
func NewSettings(cfg config.Config, pack string, lvls []levels.Level, store *storage.Store) (Settings, error) {
	opts, err := cfg.RunOptions()
	if err != nil {
		return Settings{}, err
	}
	opts.Delay = 0
	return Settings{
		Pack:    pack,
		Levels:  lvls,
		Store:   store,
		Player:  storage.LocalPlayer,
		Options: opts,
		Rules: blocks.Rules{
			MaxLoopDepth:   cfg.Engine.MaxLoopDepth,
			EnforceAllowed: cfg.Engine.EnforceAllowedActions,
		},
	}, nil
}

// RuntimeConfig converts the playback section into a platform runtime config.
func RuntimeConfig(cfg config.Config, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickRate:  cfg.Playback.TickRate,
		StepDelay: cfg.Playback.Delay(),
	}
}

// PlayModel is the Bubble Tea model for paced playback of one program.
type PlayModel struct {
	game       *blocks.Game
	screen     *core.Screen
	settings   Settings
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	wantsEdit  bool
	runSaved   bool   // Whether the current result has been journaled
	runID      string // ID of the last journaled run
}

// NewPlayModel creates a playback model for the given game.
func NewPlayModel(game *blocks.Game, settings Settings, cfg core.RuntimeConfig) PlayModel {
	return PlayModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		settings:   settings,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the run and the tick loop.
func (m PlayModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
	case action == core.ActionEdit:
		m.wantsEdit = true
	case action == core.ActionFaster, action == core.ActionSlower:
		m.changeSpeed(action == core.ActionFaster)
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// changeSpeed moves to the neighbouring speed preset.
func (m *PlayModel) changeSpeed(faster bool) {
	current, ok := config.PresetForDelay(m.game.Delay())
	if !ok {
		current = config.SpeedNormal
	}
	next := config.PrevSpeed(current)
	if faster {
		next = config.NextSpeed(current)
	}
	d, _ := config.StepDelayForPreset(next)
	m.game.SetDelay(d)
	m.config.StepDelay = d
}

// handleTick processes playback ticks.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu || m.wantsEdit {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !m.gameState.GameOver {
		m.runSaved = false
	}

	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickInterval())
}

// saveRun journals the finished run. Failures are logged, playback continues.
func (m *PlayModel) saveRun() {
	r, ok := m.game.Result()
	if !ok || m.settings.Store == nil {
		return
	}

	id, err := m.settings.Store.SaveRun(storage.NewRun(m.settings.Pack, m.settings.Player, r))
	if err != nil {
		if m.settings.Logger != nil {
			m.settings.Logger.Warn("could not save run", "level", r.LevelIndex, "error", err)
		}
		return
	}
	m.runID = id
	if m.settings.Logger != nil {
		m.settings.Logger.Info("run finished",
			"player", m.settings.Player,
			"level", r.LevelIndex,
			"complete", r.Complete,
			"blocks", r.Blocks,
			"actions", r.Actions,
		)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *PlayModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("level%02d_%s.txt", m.game.Level().Index, timestamp)

	//nolint:errcheck // Best-effort save, playback continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level picker.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsEdit returns true if user requested to edit the program.
func (m PlayModel) WantsEdit() bool {
	return m.wantsEdit
}

// RunID returns the journal ID of the last finished run, if it was saved.
func (m PlayModel) RunID() string {
	return m.runID
}

// Game returns the playback being shown.
func (m PlayModel) Game() *blocks.Game {
	return m.game
}
