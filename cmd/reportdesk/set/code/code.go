package code

import (
	"fmt"
	"reportdesk/internal/cli"
	"reportdesk/internal/database"
	"reportdesk/internal/reportbot/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
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
		Name:         "scope",
		Short:        's',
		DefaultValue: "group",
		Usage:        "defines which activation code to set (one of [group, admin])",
		Type:         cli.FlagTypeString,
	},
}

var Command = &cobra.Command{
	Use:   "code <activation-code>",
	Short: "Sets an activation code",
	Long:  "Sets the activation code entered on the inline keypad to register an admin group (--scope group) or to unlock the personal admin panel (--scope admin); only the bcrypt hash is stored",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var settingName string
		switch viper.GetString("scope") {
		case "group":
			settingName = models.SettingGroupActivationCode
		case "admin":
			settingName = models.SettingAdminActivationCode
		default:
			return fmt.Errorf("failed to recognise scope '%s'", viper.GetString("scope"))
		}
		codeHash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash the activation code: %s", err)
		}

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

		if err := models.SetSettingV1(models.SetSettingV1Opts{
			Db:    databaseConnection,
			Name:  settingName,
			Value: string(codeHash),
		}); err != nil {
			return fmt.Errorf("failed to store the activation code: %s", err)
		}
		logrus.Infof("updated setting[%s]", settingName)
		return nil
	},
}
