package start

import (
	"reportdesk/cmd/reportdesk/start/bot"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(bot.Command)
}

var Command = &cobra.Command{
	Use:     "start",
	Aliases: []string{"st"},
	Short:   "Starts one of reportdesk's core services",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
