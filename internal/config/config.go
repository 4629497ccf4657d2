// Package config loads and validates run configuration from YAML and
// provides named presets. All positivity checks for the physical
// parameters happen here, once, outside the integration path.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avelk/pendlab/internal/pendulum"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultSpeed    = 1.0
	DefaultTrail    = 500
)

// Config is a full run description as read from a YAML file.
type Config struct {
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Params     ParamsConfig    `yaml:"params"`
	InitState  InitStateConfig `yaml:"init_state"`
	Display    DisplayConfig   `yaml:"display"`
}

// ParamsConfig mirrors pendulum.Params in YAML.
type ParamsConfig struct {
	L1      float64 `yaml:"l1"`
	L2      float64 `yaml:"l2"`
	M1      float64 `yaml:"m1"`
	M2      float64 `yaml:"m2"`
	Gravity float64 `yaml:"gravity"`
}

// InitStateConfig is the starting state.
type InitStateConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

// DisplayConfig holds live-view knobs; the core never sees these.
type DisplayConfig struct {
	// Speed multiplies wall-clock dt in the live view.
	Speed float64 `yaml:"speed"`
	// Trail is the bounded length of the bob-2 path buffer.
	Trail int `yaml:"trail"`
}

// DefaultConfig is the hanging-start configuration with unit links and
// masses under g = 10.
func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Params: ParamsConfig{
			L1: pendulum.DefaultLength, L2: pendulum.DefaultLength,
			M1: pendulum.DefaultMass, M2: pendulum.DefaultMass,
			Gravity: pendulum.DefaultGravity,
		},
		Display: DisplayConfig{
			Speed: DefaultSpeed,
			Trail: DefaultTrail,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks physics parameters and run timing.
func (c *Config) Validate() error {
	if err := c.PhysicalParams().Validate(); err != nil {
		return err
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.Display.Trail < 0 {
		return fmt.Errorf("config: trail must be non-negative, got %d", c.Display.Trail)
	}
	return nil
}

// PhysicalParams converts to the core parameter type.
func (c *Config) PhysicalParams() pendulum.Params {
	return pendulum.Params{
		L1: c.Params.L1, L2: c.Params.L2,
		M1: c.Params.M1, M2: c.Params.M2,
		Gravity: c.Params.Gravity,
	}
}

// InitialState converts to the core state type.
func (c *Config) InitialState() pendulum.State {
	return pendulum.State{
		Theta1: c.InitState.Theta1,
		Theta2: c.InitState.Theta2,
		Omega1: c.InitState.Omega1,
		Omega2: c.InitState.Omega2,
	}
}
