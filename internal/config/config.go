// Package config loads server configuration from an optional YAML file with
// environment variable overrides. Environment always wins.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string  `yaml:"port"`
	DatabaseURL  string  `yaml:"database_url"`
	RedisURL     string  `yaml:"redis_url"`
	APIKey       string  `yaml:"api_key"`
	RateLimitRPS float64 `yaml:"rate_limit_rps"`
	Solver       Solver  `yaml:"solver"`
}

type Solver struct {
	MaxIterations int `yaml:"max_iterations"`
	ProgressEvery int `yaml:"progress_every"`
}

func defaults() Config {
	return Config{
		Port: "8080",
		Solver: Solver{
			MaxIterations: 1000,
			ProgressEvery: 100,
		},
	}
}

// Load reads the file named by CONFIG_FILE (when set) and applies
// environment overrides on top of the defaults.
func Load() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if cfg.Solver.MaxIterations < 0 {
		return cfg, fmt.Errorf("solver max_iterations must not be negative: %d", cfg.Solver.MaxIterations)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("SOLVER_MAX_ITERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Solver.MaxIterations = n
		}
	}
	if v := os.Getenv("SOLVER_PROGRESS_EVERY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Solver.ProgressEvery = n
		}
	}
}
