package config

import "time"

// SpeedPreset represents a named playback speed.
type SpeedPreset string

const (
	SpeedSlow    SpeedPreset = "slow"
	SpeedNormal  SpeedPreset = "normal"
	SpeedFast    SpeedPreset = "fast"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists presets from slowest to fastest.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInstant}
}

// StepDelayForPreset returns the step delay for a speed preset.
func StepDelayForPreset(preset SpeedPreset) (time.Duration, bool) {
	switch preset {
	case SpeedSlow:
		return time.Second, true
	case SpeedNormal:
		return 500 * time.Millisecond, true
	case SpeedFast:
		return 150 * time.Millisecond, true
	case SpeedInstant:
		return 0, true
	default:
		return 0, false
	}
}

// NextSpeed cycles to the next faster preset, wrapping to slow.
func NextSpeed(preset SpeedPreset) SpeedPreset {
	all := SpeedPresets()
	for i, p := range all {
		if p == preset {
			return all[(i+1)%len(all)]
		}
	}
	return SpeedNormal
}

// PrevSpeed cycles to the next slower preset, wrapping to instant.
func PrevSpeed(preset SpeedPreset) SpeedPreset {
	all := SpeedPresets()
	for i, p := range all {
		if p == preset {
			return all[(i+len(all)-1)%len(all)]
		}
	}
	return SpeedNormal
}

// PresetForDelay returns the preset whose delay equals d.
func PresetForDelay(d time.Duration) (SpeedPreset, bool) {
	for _, p := range SpeedPresets() {
		if pd, _ := StepDelayForPreset(p); pd == d {
			return p, true
		}
	}
	return "", false
}

// ApplySpeedPreset sets the playback speed.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) {
	cfg.Playback.Speed = preset
	if d, ok := StepDelayForPreset(preset); ok {
		cfg.Playback.StepDelay = d
	}
}
