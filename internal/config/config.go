// Package config loads runtime settings for the contagion binaries.
// Order: defaults -> YAML file -> .env file -> CONTAGION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"contagion/internal/sims/contagion"
	"contagion/internal/store"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "CONTAGION_"

// Config contains all settings.
type Config struct {
	Game   GameConfig   `yaml:"game" envPrefix:"GAME_"`
	Store  StoreConfig  `yaml:"store" envPrefix:"STORE_"`
	Server ServerConfig `yaml:"server" envPrefix:"SERVER_"`
	Log    LogConfig    `yaml:"log" envPrefix:"LOG_"`
}

// GameConfig tunes new sessions and where maps come from.
type GameConfig struct {
	// MapsDir holds extra *.yaml map templates. Built-in maps remain available.
	MapsDir            string `yaml:"maps_dir" env:"MAPS_DIR"`
	StartingPoints     int    `yaml:"starting_points" env:"STARTING_POINTS"`
	PointsPerInfection int    `yaml:"points_per_infection" env:"POINTS_PER_INFECTION"`
	// RenderScale is the edge length in pixels of one spot.
	RenderScale int `yaml:"render_scale" env:"RENDER_SCALE"`
}

// StoreConfig selects the session persistence backend.
type StoreConfig struct {
	Backend  string `yaml:"backend" env:"BACKEND"`
	DataDir  string `yaml:"data_dir" env:"DATA_DIR"`
	Compress bool   `yaml:"compress" env:"COMPRESS"`
}

// ServerConfig configures the websocket front end and command parsing.
type ServerConfig struct {
	Listen string `yaml:"listen" env:"LISTEN"`
	Prefix string `yaml:"prefix" env:"PREFIX"`
	// RateLimit is the sustained commands per second allowed per user; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" env:"RATE_LIMIT"`
	RateBurst int     `yaml:"rate_burst" env:"RATE_BURST"`
}

// LogConfig configures operational logging.
type LogConfig struct {
	// Level is "info" (default), "debug", or "trace".
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	game := contagion.DefaultConfig()
	return &Config{
		Game: GameConfig{
			StartingPoints:     game.StartingPoints,
			PointsPerInfection: game.PointsPerInfection,
			RenderScale:        10,
		},
		Store: StoreConfig{
			Backend: store.BackendSQLite,
			DataDir: "data",
		},
		Server: ServerConfig{
			Listen:    ":8080",
			Prefix:    "p!",
			RateLimit: 2,
			RateBurst: 5,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds a Config from defaults, the optional YAML file at path, the
// optional dotenv file at envFile, and the environment. Empty paths are skipped;
// a missing dotenv file is not an error.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ParseEnv overlays CONTAGION_* environment variables onto cfg.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Game.StartingPoints < 0 {
		return fmt.Errorf("starting_points must be non-negative, got %d", c.Game.StartingPoints)
	}
	if c.Game.PointsPerInfection < 0 {
		return fmt.Errorf("points_per_infection must be non-negative, got %d", c.Game.PointsPerInfection)
	}
	if c.Game.RenderScale < 1 {
		return fmt.Errorf("render_scale must be at least 1, got %d", c.Game.RenderScale)
	}
	switch strings.ToLower(c.Store.Backend) {
	case store.BackendSQLite, store.BackendBolt, store.BackendMemory:
	default:
		return fmt.Errorf("invalid store backend: %s (valid: sqlite, bolt, memory)", c.Store.Backend)
	}
	if strings.TrimSpace(c.Server.Prefix) == "" {
		return fmt.Errorf("command prefix must not be empty")
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("rate_limit must be non-negative, got %v", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("rate_burst must be at least 1 when rate limiting, got %d", c.Server.RateBurst)
	}
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Log.Level)
	}
	return nil
}

// Contagion returns the session settings with the default upgrade catalog.
func (g GameConfig) Contagion() contagion.Config {
	cfg := contagion.DefaultConfig()
	cfg.StartingPoints = g.StartingPoints
	cfg.PointsPerInfection = g.PointsPerInfection
	return cfg
}
