package add

import (
	"reportdesk/cmd/reportdesk/add/template"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(template.Command)
}

var Command = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Adds reportdesk resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
