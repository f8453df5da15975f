package get

import (
	"reportdesk/cmd/reportdesk/get/audit_logs"
	"reportdesk/cmd/reportdesk/get/orders"
	"reportdesk/cmd/reportdesk/get/stats"

	"github.com/spf13/cobra"
)

func init() {
	Command.AddCommand(audit_logs.Command)
	Command.AddCommand(orders.Command)
	Command.AddCommand(stats.Command)
}

var Command = &cobra.Command{
	Use:     "get",
	Aliases: []string{"g"},
	Short:   "Retrieves reportdesk resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
