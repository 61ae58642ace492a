package config

import (
	"os"
	"strconv"
	"strings"

	"simout/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Extract  ExtractConfig
	Store    StoreConfig
	Server   ServerConfig
}

// AnalysisConfig holds significance settings
type AnalysisConfig struct {
	Alpha float64
}

// ExtractConfig selects and parameterizes the extraction strategy
type ExtractConfig struct {
	// Strategy is "steady" or "snapshots"
	Strategy  string
	StartIter int
	Iters     []int
}

// StoreConfig holds the optional results archive settings
type StoreConfig struct {
	DatabaseURL string
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Analysis: AnalysisConfig{Alpha: 0.05},
		Extract:  ExtractConfig{Strategy: "steady", StartIter: 1},
		Server:   ServerConfig{Port: "8080"},
	}

	if v := os.Getenv("SIMOUT_ALPHA"); v != "" {
		alpha, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid SIMOUT_ALPHA")
		}
		if alpha <= 0 || alpha >= 1 {
			return nil, errors.ConfigInvalid("SIMOUT_ALPHA must be in (0,1)")
		}
		cfg.Analysis.Alpha = alpha
	}

	if v := os.Getenv("SIMOUT_EXTRACTOR"); v != "" {
		if v != "steady" && v != "snapshots" {
			return nil, errors.ConfigInvalid("SIMOUT_EXTRACTOR must be steady or snapshots")
		}
		cfg.Extract.Strategy = v
	}

	if v := os.Getenv("SIMOUT_START_ITER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errors.ConfigInvalid("SIMOUT_START_ITER must be a positive integer")
		}
		cfg.Extract.StartIter = n
	}

	if v := os.Getenv("SIMOUT_ITERS"); v != "" {
		iters, err := parseIters(v)
		if err != nil {
			return nil, err
		}
		cfg.Extract.Iters = iters
	}

	cfg.Store.DatabaseURL = os.Getenv("DATABASE_URL")

	if v := os.Getenv("SIMOUT_PORT"); v != "" {
		cfg.Server.Port = v
	}

	return cfg, nil
}

func parseIters(v string) ([]int, error) {
	parts := strings.Split(v, ",")
	iters := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, errors.ConfigInvalid("SIMOUT_ITERS must be comma-separated positive integers")
		}
		iters = append(iters, n)
	}
	return iters, nil
}
