package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port: got %q", cfg.Port)
	}
	if cfg.Solver.MaxIterations != 1000 {
		t.Fatalf("max iterations: got %d", cfg.Solver.MaxIterations)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("port: \"9090\"\nrate_limit_rps: 25\nsolver:\n  max_iterations: 50\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.RateLimitRPS != 25 || cfg.Solver.MaxIterations != 50 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Solver.ProgressEvery != 100 {
		t.Fatalf("unset file values must keep defaults: %d", cfg.Solver.ProgressEvery)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"9090\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("SOLVER_MAX_ITERATIONS", "7")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("env must win over file: %q", cfg.Port)
	}
	if cfg.Solver.MaxIterations != 7 {
		t.Fatalf("solver env override: got %d", cfg.Solver.MaxIterations)
	}
}

func TestLoadRejectsNegativeIterations(t *testing.T) {
	t.Setenv("SOLVER_MAX_ITERATIONS", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("negative max_iterations must be rejected")
	}
}
