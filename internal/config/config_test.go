package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "rk4" {
		t.Errorf("expected rk4 default, got %s", cfg.Integrator)
	}
	if cfg.Turns != DefaultTurns || cfg.Step != DefaultStep {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	content := "integrator: rk45\nadaptive: true\nturns: 50\nseeding:\n  lines: 4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Integrator != "rk45" || !cfg.Adaptive {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Turns != 50 {
		t.Errorf("expected 50 turns, got %d", cfg.Turns)
	}
	if cfg.Seeding.Lines != 4 {
		t.Errorf("expected 4 lines, got %d", cfg.Seeding.Lines)
	}
	if cfg.Seeding.InnerS != DefaultInnerS {
		t.Errorf("untouched fields should keep defaults, got %f", cfg.Seeding.InnerS)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	cfg := DefaultConfig()
	cfg.Equilibrium = "eq.yaml"
	cfg.Step = 0.005

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Equilibrium != "eq.yaml" || loaded.Step != 0.005 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestTraceConfigLowering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Step = 0.01
	cfg.Turns = 30
	cfg.Adaptive = true
	cfg.Tolerance = 1e-6

	tc := cfg.TraceConfig()
	if tc.Step != 0.01 || tc.Turns != 30 || !tc.Adaptive || tc.Tolerance != 1e-6 {
		t.Errorf("lowering mismatch: %+v", tc)
	}
}
