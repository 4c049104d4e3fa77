package main

import (
	"fmt"
	"runtime"
	"time"

	"contagion/internal/maps"
	"contagion/internal/sweep"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare upgrade profiles by playing many seeded games",
		Long: `sweep plays --runs games for each upgrade profile and reports how many
days each profile needs to infect the whole map.

Profiles are given as name=Upgrade:level,Upgrade:level. Without --profile
a baseline, one profile per maxed upgrade, and an all-maxed profile run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			mapName, _ := cmd.Flags().GetString("map")
			name, err := maps.Normalize(mapName)
			if err != nil {
				return err
			}
			tmpl, err := rt.maps.Template(name)
			if err != nil {
				return err
			}

			opts := sweep.Options{MapName: name, Template: tmpl}
			opts.Config = rt.cfg.Game.Contagion()
			opts.Continent, _ = cmd.Flags().GetString("continent")
			opts.Runs, _ = cmd.Flags().GetInt("runs")
			opts.MaxTurns, _ = cmd.Flags().GetInt("max-turns")
			opts.Workers, _ = cmd.Flags().GetInt("workers")
			opts.Seed, _ = cmd.Flags().GetInt64("seed")
			raws, _ := cmd.Flags().GetStringArray("profile")
			for _, raw := range raws {
				p, err := sweep.ParseProfile(raw)
				if err != nil {
					return err
				}
				opts.Profiles = append(opts.Profiles, p)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sweeping %s (%d runs per profile, %d workers, cap %d days)\n",
				name, opts.Runs, opts.Workers, opts.MaxTurns)
			start := time.Now()
			results, err := sweep.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			sweep.Report(out, results)
			fmt.Fprintf(out, "elapsed %s\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().String("map", "world", "map to sweep")
	cmd.Flags().String("continent", "", "continent for the first infection (default: first on the map)")
	cmd.Flags().Int("runs", 20, "games per profile")
	cmd.Flags().Int("max-turns", 500, "day cap per game")
	cmd.Flags().Int("workers", runtime.NumCPU(), "number of worker goroutines")
	cmd.Flags().Int64("seed", 1337, "base seed")
	cmd.Flags().StringArray("profile", nil, "upgrade profile name=Upgrade:level,... (repeatable)")
	return cmd
}
