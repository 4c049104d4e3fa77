package main

import (
	"fmt"
	"log/slog"
	"os"

	"contagion/internal/chat"
	"contagion/internal/config"
	"contagion/internal/game"
	"contagion/internal/logging"
	"contagion/internal/maps"
	"contagion/internal/store"

	"github.com/spf13/cobra"
)

// gameEnv bundles what every game command needs.
type gameEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	store  store.Store
	maps   maps.Source
	games  *game.Manager
}

func openEnv(cmd *cobra.Command) (*gameEnv, error) {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(cfg.Log.Level, os.Stderr)

	gameCfg := cfg.Game.Contagion()
	if overrides, _ := cmd.Flags().GetStringToString("set"); len(overrides) > 0 {
		if gameCfg, err = gameCfg.WithOverrides(overrides); err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
	}

	st, err := store.Open(cfg.Store.Backend, cfg.Store.DataDir, cfg.Store.Compress)
	if err != nil {
		return nil, err
	}
	templates := maps.Builtin()
	if cfg.Game.MapsDir != "" {
		templates = maps.Chain{maps.NewDir(cfg.Game.MapsDir), templates}
	}
	return &gameEnv{
		cfg:    cfg,
		logger: logger,
		store:  st,
		maps:   templates,
		games:  game.NewManager(templates, st, gameCfg, game.WithLogger(logger)),
	}, nil
}

func (r *gameEnv) Close() error { return r.store.Close() }

func (r *gameEnv) bot() *chat.Bot {
	return chat.New(r.games, chat.Options{
		Prefix: r.cfg.Server.Prefix,
		Scale:  r.cfg.Game.RenderScale,
		Logger: r.logger,
	})
}
