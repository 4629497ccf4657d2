package config

import "sort"

// Presets are named starting configurations. "kick" reproduces the
// classic demonstration: both links at rest, the lower one displaced
// two radians.
var Presets = map[string]*Config{
	"gentle": {
		Integrator: "rk4", Dt: 0.01, Duration: 30.0,
		InitState: InitStateConfig{Theta1: 0.3, Theta2: 0.3},
	},
	"kick": {
		Integrator: "rk4", Dt: 0.01, Duration: 30.0,
		InitState: InitStateConfig{Theta1: 0.0, Theta2: 2.0},
	},
	"symmetric": {
		Integrator: "rk4", Dt: 0.005, Duration: 30.0,
		InitState: InitStateConfig{Theta1: 1.5, Theta2: 1.5},
	},
	"chaos": {
		Integrator: "rk4", Dt: 0.005, Duration: 60.0,
		InitState: InitStateConfig{Theta1: 3.0, Theta2: 3.0},
	},
	"flip": {
		Integrator: "rk4", Dt: 0.005, Duration: 60.0,
		InitState: InitStateConfig{Theta1: 3.1, Theta2: 0.0, Omega2: 2.0},
	},
}

// GetPreset returns a fully populated config for the named preset, or
// nil when unknown. Physics parameters and display knobs fall back to
// the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Integrator = p.Integrator
	cfg.Dt = p.Dt
	cfg.Duration = p.Duration
	cfg.InitState = p.InitState
	return cfg
}

// ListPresets returns the known preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
