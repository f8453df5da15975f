package migrate

import (
	"fmt"
	"reportdesk/internal/cli"
	"reportdesk/internal/common"
	"reportdesk/internal/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	flags.AddToCommand(Command)
}

var flags cli.Flags = cli.Flags{
	{
		Name:         "mysql-host",
		DefaultValue: "127.0.0.1",
		Usage:        "defines the hostname of the mysql server",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mysql-port",
		DefaultValue: 3306,
		Usage:        "defines the port which the mysql server is listening on",
		Type:         cli.FlagTypeInteger,
	},
	{
		Name:         "mysql-user",
		DefaultValue: "reportdesk",
		Usage:        "defines the username used to login to mysql",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mysql-password",
		DefaultValue: "password",
		Usage:        "defines the password used to login to mysql",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mysql-database",
		DefaultValue: "reportdesk",
		Usage:        "defines the name of the database schema to use",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "steps",
		DefaultValue: 0,
		Usage:        "number of migration steps to apply, negative values roll back; when zero, migrates all the way up",
		Type:         cli.FlagTypeInteger,
	},
}

var Command = &cobra.Command{
	Use:     "migrate",
	Aliases: []string{"m"},
	Short:   "Runs the database migrations",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {

		serviceLogs := make(chan common.ServiceLog, 64)
		common.StartServiceLogLoop(serviceLogs)

		databaseConnection, err := database.ConnectMysql(database.ConnectOpts{
			Host:     viper.GetString("mysql-host"),
			Port:     viper.GetInt("mysql-port"),
			Username: viper.GetString("mysql-user"),
			Password: viper.GetString("mysql-password"),
			Database: viper.GetString("mysql-database"),
		})
		if err != nil {
			return fmt.Errorf("failed to connect to mysql: %s", err)
		}
		defer databaseConnection.Close()

		if err := database.MigrateMysql(database.MigrateOpts{
			Connection:  databaseConnection,
			Steps:       viper.GetInt("steps"),
			ServiceLogs: serviceLogs,
		}); err != nil {
			return fmt.Errorf("failed to run migrations: %s", err)
		}
		logrus.Infof("migrations applied")
		return nil
	},
}
