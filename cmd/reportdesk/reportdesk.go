package reportdesk

import (
	"fmt"
	"os"
	"reportdesk/cmd/reportdesk/add"
	"reportdesk/cmd/reportdesk/get"
	"reportdesk/cmd/reportdesk/migrate"
	"reportdesk/cmd/reportdesk/set"
	"reportdesk/cmd/reportdesk/start"
	"reportdesk/internal/cli"
	"reportdesk/internal/common"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var availableOutputs = []string{
	"text",
	"json",
}

var availableLogLevels = func() []string {
	levels := []string{}
	for _, level := range common.LogLevels {
		levels = append(levels, string(level))
	}
	return levels
}()

var persistentFlags cli.Flags = cli.Flags{
	{
		Name:         "log-level",
		Short:        'l',
		DefaultValue: "info",
		Usage:        fmt.Sprintf("Sets the log level (one of [%s])", strings.Join(availableLogLevels, ", ")),
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "output",
		Short:        'o',
		DefaultValue: "text",
		Usage:        fmt.Sprintf("Sets the output format where applicable (one of [%s])", strings.Join(availableOutputs, ", ")),
		Type:         cli.FlagTypeString,
	},
}

func init() {
	Command.AddCommand(add.Command)
	Command.AddCommand(get.Command)
	Command.AddCommand(migrate.Command)
	Command.AddCommand(set.Command)
	Command.AddCommand(start.Command)
	Command.SilenceErrors = true
	Command.SilenceUsage = true

	persistentFlags.AddToCommand(Command, true)

	logrus.SetOutput(os.Stderr)
	cobra.OnInitialize(func() {
		persistentFlags.BindViper(Command, true)
		cli.InitLogging(viper.GetString("log-level"))
	})

	cli.InitConfig()
}

var Command = &cobra.Command{
	Use:   "reportdesk",
	Short: "Telegram-native reporting workflows for finance teams",
	Long:  "Telegram-native reporting workflows for finance teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}
