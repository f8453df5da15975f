package set

import (
	"reportdesk/cmd/reportdesk/set/code"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(code.Command)
}

var Command = &cobra.Command{
	Use:   "set",
	Short: "Sets reportdesk configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
