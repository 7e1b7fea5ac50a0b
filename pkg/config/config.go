// Package config resolves planning defaults from a .env file and the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vsinha/stockplan/pkg/domain/entities"
	"github.com/vsinha/stockplan/pkg/domain/services/planning"
)

// Environment variable names
const (
	EnvLowDOI          = "STOCKPLAN_LOW_DOI"
	EnvCriticalDOI     = "STOCKPLAN_CRITICAL_DOI"
	EnvDOIGoal         = "STOCKPLAN_DOI_GOAL"
	EnvSmoothingWindow = "STOCKPLAN_SMOOTHING_WINDOW"
	EnvDemandWindow    = "STOCKPLAN_DEMAND_WINDOW_DAYS"
	EnvGrowthPeriod    = "STOCKPLAN_GROWTH_PERIOD_DAYS"
	EnvFormat          = "STOCKPLAN_FORMAT"
	EnvEncoding        = "STOCKPLAN_ENCODING"
)

// Config holds the planning defaults
type Config struct {
	Thresholds       entities.DOIThresholds
	DOIGoal          float64
	SmoothingWindow  int
	DemandWindowDays int
	GrowthPeriodDays int
	Format           string
	Encoding         string
}

// Default returns the built-in defaults
func Default() Config {
	return Config{
		Thresholds:       entities.DefaultDOIThresholds(),
		DOIGoal:          60,
		SmoothingWindow:  planning.DefaultSmoothingWindow,
		DemandWindowDays: 30,
		GrowthPeriodDays: 7,
		Format:           "text",
		Encoding:         "utf-8",
	}
}

// Load reads the given .env files (".env" when none are named) into the
// process environment and resolves the configuration. Missing .env files are
// not an error; variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves the configuration from a variable lookup function
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var err error

	if cfg.Thresholds.Low, err = floatVar(getenv, EnvLowDOI, cfg.Thresholds.Low); err != nil {
		return Config{}, err
	}
	if cfg.Thresholds.Critical, err = floatVar(getenv, EnvCriticalDOI, cfg.Thresholds.Critical); err != nil {
		return Config{}, err
	}
	if cfg.DOIGoal, err = floatVar(getenv, EnvDOIGoal, cfg.DOIGoal); err != nil {
		return Config{}, err
	}
	if cfg.SmoothingWindow, err = intVar(getenv, EnvSmoothingWindow, cfg.SmoothingWindow); err != nil {
		return Config{}, err
	}
	if cfg.DemandWindowDays, err = intVar(getenv, EnvDemandWindow, cfg.DemandWindowDays); err != nil {
		return Config{}, err
	}
	if cfg.GrowthPeriodDays, err = intVar(getenv, EnvGrowthPeriod, cfg.GrowthPeriodDays); err != nil {
		return Config{}, err
	}
	if v := strings.TrimSpace(getenv(EnvFormat)); v != "" {
		cfg.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvEncoding)); v != "" {
		cfg.Encoding = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the thresholds, goal and window sizes
func (c Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	if err := entities.ValidateUnits("doi goal", c.DOIGoal); err != nil {
		return err
	}
	if c.SmoothingWindow <= 0 {
		return fmt.Errorf("%w: smoothing window must be positive, got %d", entities.ErrInvalidArgument, c.SmoothingWindow)
	}
	if c.DemandWindowDays <= 0 {
		return fmt.Errorf("%w: demand window must be positive, got %d", entities.ErrInvalidArgument, c.DemandWindowDays)
	}
	if c.GrowthPeriodDays <= 0 {
		return fmt.Errorf("%w: growth period must be positive, got %d", entities.ErrInvalidArgument, c.GrowthPeriodDays)
	}
	switch c.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Format)
	}
	return nil
}

func floatVar(getenv func(string) string, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}

func intVar(getenv func(string) string, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, raw)
	}
	return v, nil
}
