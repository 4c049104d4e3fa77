package main

import (
	"fmt"
	"os"
	"strings"

	"contagion/internal/chat"

	"github.com/spf13/cobra"
)

// runCommand sends one prefixed command through the chat bot so the CLI and
// the websocket front end answer identically.
func runCommand(cmd *cobra.Command, name string, args []string) error {
	rt, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	user, _ := cmd.Flags().GetString("user")
	bot := rt.bot()
	text := bot.Prefix() + strings.TrimSpace(name+" "+strings.Join(args, " "))
	reply, err := bot.Handle(cmd.Context(), chat.Message{User: user, Name: user, Text: text})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply.Text)

	out, _ := cmd.Flags().GetString("out")
	if out != "" && len(reply.Image) > 0 {
		if err := os.WriteFile(out, reply.Image, 0o644); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Map written to %s\n", out)
	}
	return nil
}

func gameCmd(use, short string, args cobra.PositionalArgs, withImage bool) *cobra.Command {
	name, _, _ := strings.Cut(use, " ")
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, name, args)
		},
	}
	if withImage {
		cmd.Flags().StringP("out", "o", "", "write the map PNG to this file")
	}
	return cmd
}

func newNewGameCmd() *cobra.Command {
	return gameCmd("newgame <map>", "Start a new game on a map", cobra.ArbitraryArgs, true)
}

func newMapCmd() *cobra.Command {
	return gameCmd("map", "Show the current map", cobra.NoArgs, true)
}

func newPlaceCmd() *cobra.Command {
	return gameCmd("place <continent>", "Place the first infection on a continent", cobra.ArbitraryArgs, true)
}

func newNextCmd() *cobra.Command {
	return gameCmd("next", "Advance one day", cobra.NoArgs, true)
}

func newUpgradeCmd() *cobra.Command {
	return gameCmd("upgrade <name>", "Buy one level of an upgrade", cobra.ArbitraryArgs, false)
}

func newUpgradesCmd() *cobra.Command {
	return gameCmd("upgrades", "List upgrades and their costs", cobra.NoArgs, false)
}

func newMapsCmd() *cobra.Command {
	return gameCmd("maps", "List available maps", cobra.NoArgs, false)
}

func newEndCmd() *cobra.Command {
	return gameCmd("end", "Delete the current game", cobra.NoArgs, false)
}
