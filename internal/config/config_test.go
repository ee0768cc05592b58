package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockbot/internal/games/blocks/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("embedded defaults drifted from Default() (-hardcoded +embedded):\n%s", diff)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "engine:\n  initial_facing: down\nplayback:\n  step_delay: 50ms\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.InitialFacing != "down" {
		t.Errorf("expected facing down, got %q", cfg.Engine.InitialFacing)
	}
	if cfg.Playback.StepDelay != 50*time.Millisecond {
		t.Errorf("expected 50ms delay, got %s", cfg.Playback.StepDelay)
	}
	if cfg.Engine.MaxLoopDepth != 1 {
		t.Errorf("expected untouched keys to keep defaults, got max_loop_depth=%d", cfg.Engine.MaxLoopDepth)
	}
	if cfg.Server.Address != ":23234" {
		t.Errorf("expected default address, got %q", cfg.Server.Address)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "engine: [")
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "engine:\n  initial_facing: north\n")
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir) // no ~/.blockbot/config.yaml
	t.Chdir(dir)

	writeFile(t, filepath.Join(dir, "configs", FileName), "engine:\n  max_loop_depth: 3\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine.MaxLoopDepth != 3 {
		t.Errorf("expected max_loop_depth 3 from ./configs, got %d", cfg.Engine.MaxLoopDepth)
	}
}

func TestLoadUserDirWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	writeFile(t, filepath.Join(dir, ".blockbot", "config.yaml"), "engine:\n  max_loop_depth: 0\n")
	writeFile(t, filepath.Join(dir, "configs", FileName), "engine:\n  max_loop_depth: 3\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine.MaxLoopDepth != 0 {
		t.Errorf("expected user config to win, got %d", cfg.Engine.MaxLoopDepth)
	}
}

func TestRunOptions(t *testing.T) {
	cfg := Default()
	cfg.Engine.InitialFacing = "left"
	ApplySpeedPreset(&cfg, SpeedFast)

	opts, err := cfg.RunOptions()
	if err != nil {
		t.Fatalf("RunOptions failed: %v", err)
	}
	if opts.Facing != core.DirLeft {
		t.Errorf("expected facing left, got %s", opts.Facing)
	}
	if opts.Delay != 150*time.Millisecond {
		t.Errorf("expected fast delay, got %s", opts.Delay)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"facing", func(c *Config) { c.Engine.InitialFacing = "sideways" }},
		{"loop depth", func(c *Config) { c.Engine.MaxLoopDepth = -1 }},
		{"step delay", func(c *Config) { c.Playback.StepDelay = -time.Second }},
		{"tick rate", func(c *Config) { c.Playback.TickRate = 1000 }},
		{"speed", func(c *Config) { c.Playback.Speed = "ludicrous" }},
		{"idle timeout", func(c *Config) { c.Server.IdleTimeout = -time.Minute }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSpeedPresets(t *testing.T) {
	if got := NextSpeed(SpeedInstant); got != SpeedSlow {
		t.Errorf("expected wrap to slow, got %s", got)
	}
	if got := NextSpeed("bogus"); got != SpeedNormal {
		t.Errorf("expected normal for unknown preset, got %s", got)
	}
	if got := PrevSpeed(SpeedSlow); got != SpeedInstant {
		t.Errorf("expected wrap to instant, got %s", got)
	}
	if got := PrevSpeed(SpeedFast); got != SpeedNormal {
		t.Errorf("expected normal before fast, got %s", got)
	}
	if p, ok := PresetForDelay(150 * time.Millisecond); !ok || p != SpeedFast {
		t.Errorf("PresetForDelay(150ms) = %q, %v", p, ok)
	}
	if _, ok := PresetForDelay(42 * time.Millisecond); ok {
		t.Error("PresetForDelay should not match a custom delay")
	}

	prev := time.Hour
	for _, p := range SpeedPresets() {
		d, ok := StepDelayForPreset(p)
		if !ok {
			t.Fatalf("preset %s has no delay", p)
		}
		if d >= prev {
			t.Errorf("preset %s (%s) is not faster than the previous one", p, d)
		}
		prev = d
	}
}

func TestTickInterval(t *testing.T) {
	if got := (PlaybackConfig{TickRate: 20}).TickInterval(); got != 50*time.Millisecond {
		t.Errorf("expected 50ms, got %s", got)
	}
	if got := (PlaybackConfig{}).TickInterval(); got <= 0 {
		t.Errorf("expected a positive fallback interval, got %s", got)
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := ExpandHome("~/runs.db"); got != filepath.Join("/home/tester", "runs.db") {
		t.Errorf("unexpected expansion %q", got)
	}
	if got := ExpandHome("/abs/runs.db"); got != "/abs/runs.db" {
		t.Errorf("absolute path changed to %q", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
