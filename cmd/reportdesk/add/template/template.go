package template

import (
	"fmt"
	"os"
	"reportdesk/internal/cli"
	"reportdesk/internal/database"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
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
}

// templateManifest is the yaml shape of a template file passed to
// `reportdesk add template`
type templateManifest struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Content   string `yaml:"content"`
	IsDefault bool   `yaml:"isDefault"`
}

var Command = &cobra.Command{
	Use:     "template <template-path>",
	Aliases: []string{"t"},
	Short:   "Adds a report template",
	Long:    "Adds a report template from a yaml manifest containing the fields name, type, content, and isDefault",
	Args:    cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestData, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read template manifest: %s", err)
		}
		var manifest templateManifest
		if err := yaml.Unmarshal(manifestData, &manifest); err != nil {
			return fmt.Errorf("failed to parse template manifest: %s", err)
		}
		orderType := reports.OrderType(manifest.Type)
		if !orderType.IsValid() {
			return fmt.Errorf("failed to recognise order type '%s'", manifest.Type)
		}
		if manifest.Content == "" {
			return fmt.Errorf("failed to receive any template content")
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

		templateId, err := models.CreateTemplateV1(models.CreateTemplateV1Opts{
			Db:        databaseConnection,
			Name:      manifest.Name,
			Type:      orderType,
			Content:   manifest.Content,
			IsDefault: manifest.IsDefault,
		})
		if err != nil {
			return fmt.Errorf("failed to create template: %s", err)
		}
		logrus.Infof("created template[%s]", templateId)
		return nil
	},
}
