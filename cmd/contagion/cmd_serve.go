package main

import (
	"context"
	"os"

	"contagion/internal/chat"
	"contagion/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over websockets",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			addr, _ := cmd.Flags().GetString("listen")
			if addr == "" {
				addr = rt.cfg.Server.Listen
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			notifySignals(sigCh)
			go func() {
				select {
				case sig := <-sigCh:
					rt.logger.Info("shutting down", "signal", sig.String())
					cancel()
				case <-ctx.Done():
				}
			}()

			bot := chat.New(rt.games, chat.Options{
				Prefix:    rt.cfg.Server.Prefix,
				Scale:     rt.cfg.Game.RenderScale,
				RateLimit: rt.cfg.Server.RateLimit,
				RateBurst: rt.cfg.Server.RateBurst,
				Logger:    rt.logger,
			})
			srv := server.New(bot, rt.games, rt.cfg.Game.RenderScale, rt.logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("listen", "", "listen address (defaults to server.listen)")
	return cmd
}
