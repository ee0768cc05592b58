// Package config provides YAML-based configuration loading for blockbot:
// engine rules, playback pacing, storage, level sources and the SSH server.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

// Config is the complete application configuration.
type Config struct {
	Engine   EngineConfig   `yaml:"engine"`
	Playback PlaybackConfig `yaml:"playback"`
	Storage  StorageConfig  `yaml:"storage"`
	Levels   LevelsConfig   `yaml:"levels"`
	Server   ServerConfig   `yaml:"server"`
}

// EngineConfig defines rule parameters for runs.
type EngineConfig struct {
	InitialFacing         string `yaml:"initial_facing"`          // up, right, down or left
	MaxLoopDepth          int    `yaml:"max_loop_depth"`          // 0 = unlimited
	EnforceAllowedActions bool   `yaml:"enforce_allowed_actions"` // Reject blocks a level does not offer
}

// PlaybackConfig defines pacing for animated runs.
type PlaybackConfig struct {
	Speed     SpeedPreset   `yaml:"speed,omitempty"` // Overrides StepDelay when set
	StepDelay time.Duration `yaml:"step_delay"`      // Pause before each action
	TickRate  int           `yaml:"tick_rate"`       // UI frames per second
}

// StorageConfig defines where the run journal lives.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // Empty = ~/.blockbot/runs.db
}

// LevelsConfig defines where levels are loaded from.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty = builtin pack
}

// ServerConfig defines SSH server parameters.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Empty = ~/.blockbot/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Facing returns the configured initial facing.
func (e EngineConfig) Facing() (core.Dir, error) {
	if e.InitialFacing == "" {
		return core.DefaultFacing, nil
	}
	return core.ParseDir(e.InitialFacing)
}

// Delay returns the effective step delay, taking the speed preset into account.
func (p PlaybackConfig) Delay() time.Duration {
	if p.Speed != "" {
		if d, ok := StepDelayForPreset(p.Speed); ok {
			return d
		}
	}
	return p.StepDelay
}

// TickInterval returns the UI frame interval.
func (p PlaybackConfig) TickInterval() time.Duration {
	if p.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(p.TickRate)
}

// RunOptions converts the engine and playback sections into run options.
func (c Config) RunOptions() (core.Options, error) {
	facing, err := c.Engine.Facing()
	if err != nil {
		return core.Options{}, err
	}
	return core.Options{
		Facing: facing,
		Delay:  c.Playback.Delay(),
	}, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := c.Engine.Facing(); err != nil {
		return fmt.Errorf("engine.initial_facing: %w", err)
	}
	if c.Engine.MaxLoopDepth < 0 {
		return fmt.Errorf("engine.max_loop_depth must be >= 0, got %d", c.Engine.MaxLoopDepth)
	}
	if c.Playback.StepDelay < 0 {
		return fmt.Errorf("playback.step_delay must be >= 0, got %s", c.Playback.StepDelay)
	}
	if c.Playback.TickRate < 0 || c.Playback.TickRate > 240 {
		return fmt.Errorf("playback.tick_rate must be in [0, 240], got %d", c.Playback.TickRate)
	}
	if c.Playback.Speed != "" {
		if _, ok := StepDelayForPreset(c.Playback.Speed); !ok {
			return fmt.Errorf("playback.speed: unknown preset %q", c.Playback.Speed)
		}
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be >= 0, got %s", c.Server.IdleTimeout)
	}
	return nil
}
