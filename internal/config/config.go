// Package config holds the YAML run configuration for field-line
// tracing sessions.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qsun/fluxtrace/internal/trace"
)

const (
	DefaultStep   = 0.02
	DefaultTurns  = 200
	DefaultLines  = 12
	DefaultInnerS = 0.05
	DefaultOuterS = 0.95
)

type Config struct {
	Equilibrium string  `yaml:"equilibrium"`
	Volume      int     `yaml:"volume"`
	Integrator  string  `yaml:"integrator"`
	Step        float64 `yaml:"step"`
	Turns       int     `yaml:"turns"`
	Adaptive    bool    `yaml:"adaptive"`
	Tolerance   float64 `yaml:"tolerance"`

	Seeding SeedingConfig `yaml:"seeding"`
}

// SeedingConfig places the start states for an ensemble run.
type SeedingConfig struct {
	Lines  int     `yaml:"lines"`
	InnerS float64 `yaml:"inner_s"`
	OuterS float64 `yaml:"outer_s"`
	Theta  float64 `yaml:"theta"`
}

func DefaultConfig() *Config {
	return &Config{
		Volume:     1,
		Integrator: "rk4",
		Step:       DefaultStep,
		Turns:      DefaultTurns,
		Tolerance:  1e-8,
		Seeding: SeedingConfig{
			Lines:  DefaultLines,
			InnerS: DefaultInnerS,
			OuterS: DefaultOuterS,
		},
	}
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}

// TraceConfig lowers the file form into the tracer's own config.
func (c *Config) TraceConfig() trace.Config {
	tc := trace.DefaultConfig()
	tc.Step = c.Step
	tc.Turns = c.Turns
	tc.Adaptive = c.Adaptive
	if c.Tolerance > 0 {
		tc.Tolerance = c.Tolerance
	}
	return tc
}
