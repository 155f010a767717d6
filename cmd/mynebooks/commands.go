package main

import (
	"MyneBooks/internal/bot/dispatch"
	"MyneBooks/internal/bot/plugins"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands shown in the bot menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, baseLogger, err := setup()
		if err != nil {
			return err
		}

		registry := dispatch.NewRegistry(&baseLogger, cfg.Plugins.Disabled...)
		plugins.Register(registry)

		return printCommands(cmd.OutOrStdout(), cfg.Bot.Prefixes, registry.Commands())
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}

// printCommands writes one "<prefix><command> - <description>" line per
// command, using the first configured prefix.
func printCommands(w io.Writer, prefixes []string, commands []dispatch.CommandInfo) error {
	prefix := "/"
	if len(prefixes) > 0 {
		prefix = prefixes[0]
	}
	for _, c := range commands {
		if _, err := fmt.Fprintf(w, "%s%s - %s\n", prefix, c.Command, c.Description); err != nil {
			return err
		}
	}
	return nil
}
