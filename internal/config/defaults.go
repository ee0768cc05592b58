package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blockbot.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			InitialFacing: "right",
			MaxLoopDepth:  1,
		},
		Playback: PlaybackConfig{
			StepDelay: 500 * time.Millisecond,
			TickRate:  30,
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
