// Package blocks adapts the block-programming engine to the terminal
// platform: it plays a program back one action at a time on the tick loop.
package blocks

import (
	"time"

	platformcore "github.com/vovakirdan/blockbot/internal/core"
	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// Game plays one program on one level.
type Game struct {
	level   *core.Level
	program core.Program
	opts    core.Options

	exec   *core.Execution
	state  *core.State
	result *core.Result
	err    error

	// Screen dimensions
	screenW int
	screenH int

	tick    time.Duration // Wall time per platform tick
	delay   time.Duration // Wall time per program action
	pending time.Duration // Time accumulated towards the next action
	paused  bool
}

// New creates a playback of program on level. opts.Delay and opts.Observer
// are ignored: pacing comes from the tick loop.
func New(level *core.Level, program core.Program, opts core.Options) *Game {
	opts.Delay = 0
	opts.Observer = nil
	return &Game{
		level:   level,
		program: program,
		opts:    opts,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "blocks"
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Reset starts the playback over with the given runtime configuration.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = cfg.TickInterval()
	g.delay = cfg.StepDelay
	g.restart()
}

func (g *Game) restart() {
	g.pending = 0
	g.paused = false
	g.result = nil
	g.state = nil

	exec, err := core.NewExecution(g.level, g.program, g.opts)
	g.exec = exec
	g.err = err
	if err == nil {
		g.state = exec.State()
	}
}

// Resize updates the screen dimensions without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// SetDelay changes the pause between program actions. Zero plays the rest of
// the program on the next tick.
func (g *Game) SetDelay(d time.Duration) {
	if d < 0 {
		d = 0
	}
	g.delay = d
	if g.pending > d {
		g.pending = d
	}
}

// Delay returns the pause between program actions.
func (g *Game) Delay() time.Duration {
	return g.delay
}

// Step advances playback by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionRestart) {
		g.restart()
		return platformcore.StepResult{State: g.State()}
	}

	if g.err != nil || g.result != nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}

	advanced := 0
	switch {
	case g.paused:
		if in.Has(platformcore.ActionStep) {
			advanced += g.advance()
		}
	case g.delay <= 0:
		for g.result == nil {
			advanced += g.advance()
		}
	default:
		// A tick longer than the delay plays several actions.
		g.pending += g.tick
		for g.pending >= g.delay && g.result == nil {
			g.pending -= g.delay
			advanced += g.advance()
		}
	}

	return platformcore.StepResult{
		State:    g.State(),
		Advanced: advanced,
		Finished: g.result != nil,
	}
}

// advance applies the next action and closes the run once nothing is left.
func (g *Game) advance() int {
	n := 0
	if st, ok := g.exec.Next(); ok {
		g.state = st
		n = 1
	}
	if g.exec.Done() {
		final := g.exec.Finish()
		g.state = final
		r := core.NewResult(g.level, g.program, final)
		g.result = &r
	}
	return n
}

// State returns the platform view of the playback.
func (g *Game) State() platformcore.GameState {
	if g.err != nil {
		return platformcore.GameState{Failed: true, GameOver: true}
	}
	return platformcore.GameState{
		Actions:  g.state.Actions,
		Complete: g.state.Complete,
		Failed:   g.state.Failed,
		Paused:   g.paused,
		GameOver: g.result != nil,
	}
}

// Current returns the latest engine state, or nil if the run could not start.
func (g *Game) Current() *core.State {
	return g.state
}

// Result returns the run summary once the run has closed.
func (g *Game) Result() (core.Result, bool) {
	if g.result == nil {
		return core.Result{}, false
	}
	return *g.result, true
}

// Err returns the error that prevented the run from starting.
func (g *Game) Err() error {
	return g.err
}

// Level returns the level being played.
func (g *Game) Level() *core.Level {
	return g.level
}

// Program returns the program being played.
func (g *Game) Program() core.Program {
	return g.program
}
