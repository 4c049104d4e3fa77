//go:build ebiten

package main

import (
	"context"
	"errors"
	"log"
	"os"

	"contagion/internal/app"
	"contagion/internal/config"
	"contagion/internal/game"
	"contagion/internal/logging"
	"contagion/internal/maps"
	"contagion/internal/store"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func main() {
	flags := app.NewFlags()
	var configPath, envFile string

	cmd := &cobra.Command{
		Use:   "viewer",
		Short: "Play a contagion game in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(cfg.Log.Level, os.Stderr)

			st, err := store.Open(cfg.Store.Backend, cfg.Store.DataDir, cfg.Store.Compress)
			if err != nil {
				return err
			}
			defer st.Close()

			templates := maps.Source(maps.Builtin())
			if cfg.Game.MapsDir != "" {
				templates = maps.Chain{maps.NewDir(cfg.Game.MapsDir), templates}
			}
			games := game.NewManager(templates, st, cfg.Game.Contagion(), game.WithLogger(logger))

			ctrl, err := app.NewController(context.Background(), games, flags.User, flags.Map)
			if err != nil {
				return err
			}
			g := app.New(ctrl, flags)
			w, h := g.Layout(0, 0)

			ebiten.SetWindowTitle("contagion - " + ctrl.Session().MapName())
			ebiten.SetTPS(flags.TPS)
			ebiten.SetWindowSize(w, h)

			if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
	flags.Bind(cmd.Flags())
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
