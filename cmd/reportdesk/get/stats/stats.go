package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reportdesk/internal/cli"
	"reportdesk/internal/database"
	"reportdesk/internal/reportbot/models"

	"github.com/olekukonko/tablewriter"
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
}

var Command = &cobra.Command{
	Use:   "stats",
	Short: "Retrieves aggregate order statistics",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
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

		orderStats, err := models.GetOrderStatsV1(models.GetOrderStatsV1Opts{
			Db: databaseConnection,
		})
		if err != nil {
			return fmt.Errorf("failed to retrieve order stats: %s", err)
		}

		switch viper.GetString("output") {
		case "json":
			o, _ := json.MarshalIndent(orderStats, "", "  ")
			fmt.Println(string(o))
		case "text":
			fallthrough
		default:
			var tableData bytes.Buffer
			table := tablewriter.NewWriter(&tableData)
			table.Header([]string{"metric", "value"})
			table.Append([]string{"total orders", fmt.Sprintf("%v", orderStats.TotalOrders)})
			table.Append([]string{"pending orders", fmt.Sprintf("%v", orderStats.PendingOrders)})
			table.Append([]string{"approved orders", fmt.Sprintf("%v", orderStats.ApprovedOrders)})
			table.Append([]string{"rejected orders", fmt.Sprintf("%v", orderStats.RejectedOrders)})
			table.Append([]string{"deposit total", orderStats.DepositTotal})
			table.Append([]string{"withdrawal total", orderStats.WithdrawalTotal})
			table.Append([]string{"refund total", orderStats.RefundTotal})
			table.Render()
			fmt.Println(tableData.String())
		}
		return nil
	},
}
