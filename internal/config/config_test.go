package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Prefix != "p!" || cfg.Game.RenderScale != 10 || cfg.Store.Backend != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadLayersFileDotenvAndEnv(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "contagion.yaml")
	writeFile(t, yamlPath, "game:\n  starting_points: 3\n  render_scale: 4\nstore:\n  backend: bolt\n")
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, "CONTAGION_GAME_POINTS_PER_INFECTION=2\nCONTAGION_SERVER_PREFIX=c!\n")
	t.Setenv("CONTAGION_GAME_STARTING_POINTS", "7")
	t.Setenv("CONTAGION_STORE_COMPRESS", "true")
	// godotenv sets process variables; register them so they are restored.
	t.Setenv("CONTAGION_GAME_POINTS_PER_INFECTION", "")
	os.Unsetenv("CONTAGION_GAME_POINTS_PER_INFECTION")
	t.Setenv("CONTAGION_SERVER_PREFIX", "")
	os.Unsetenv("CONTAGION_SERVER_PREFIX")

	cfg, err := Load(yamlPath, envPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.StartingPoints != 7 {
		t.Fatalf("env should override file, got %d", cfg.Game.StartingPoints)
	}
	if cfg.Game.RenderScale != 4 || cfg.Store.Backend != "bolt" {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Game.PointsPerInfection != 2 || cfg.Server.Prefix != "c!" {
		t.Fatalf("dotenv values lost: %+v", cfg)
	}
	if !cfg.Store.Compress {
		t.Fatalf("expected compress from env")
	}
	if cfg.Server.Listen != ":8080" {
		t.Fatalf("defaults should survive, got %q", cfg.Server.Listen)
	}
}

func TestLoadMissingDotenvIsIgnored(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing dotenv should be ignored: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "absent.yaml"), ""); err == nil {
		t.Fatalf("expected error for missing config file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "game: [")
	if _, err := Load(bad, ""); err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
	t.Setenv("CONTAGION_GAME_STARTING_POINTS", "lots")
	if _, err := Load("", ""); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("expected env parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative points", func(c *Config) { c.Game.StartingPoints = -1 }},
		{"negative income", func(c *Config) { c.Game.PointsPerInfection = -1 }},
		{"zero scale", func(c *Config) { c.Game.RenderScale = 0 }},
		{"backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"prefix", func(c *Config) { c.Server.Prefix = " " }},
		{"rate", func(c *Config) { c.Server.RateLimit = -1 }},
		{"burst", func(c *Config) { c.Server.RateBurst = 0 }},
		{"level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestGameConfigContagion(t *testing.T) {
	g := GameConfig{StartingPoints: 4, PointsPerInfection: 3}
	cfg := g.Contagion()
	if cfg.StartingPoints != 4 || cfg.PointsPerInfection != 3 || len(cfg.Catalog) == 0 {
		t.Fatalf("unexpected contagion config %+v", cfg)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
