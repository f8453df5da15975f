package orders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reportdesk/internal/cli"
	"reportdesk/internal/database"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"

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
	{
		Name:         "status",
		Short:        's',
		DefaultValue: "",
		Usage:        "limits the listing to orders in this status (one of [pending, approved, approved_modified, rejected])",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "limit",
		DefaultValue: 50,
		Usage:        "defines how many orders to return",
		Type:         cli.FlagTypeInteger,
	},
}

var Command = &cobra.Command{
	Use:     "orders",
	Aliases: []string{"o"},
	Short:   "Retrieves submitted orders",
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

		var status *reports.OrderStatus
		if statusFilter := viper.GetString("status"); statusFilter != "" {
			orderStatus := reports.OrderStatus(statusFilter)
			status = &orderStatus
		}
		orders, err := models.ListOrdersV1(models.ListOrdersV1Opts{
			Db:     databaseConnection,
			Status: status,
			Limit:  viper.GetInt("limit"),
		})
		if err != nil {
			return fmt.Errorf("failed to list orders: %s", err)
		}

		switch viper.GetString("output") {
		case "json":
			o, _ := json.MarshalIndent(orders, "", "  ")
			fmt.Println(string(o))
		case "text":
			fallthrough
		default:
			var tableData bytes.Buffer
			table := tablewriter.NewWriter(&tableData)
			table.Header([]string{"order", "type", "status", "amount", "employee", "submitted at"})
			for _, order := range orders {
				table.Append([]string{
					order.OrderNumber,
					string(order.Type),
					string(order.Status),
					order.Amount,
					fmt.Sprintf("%v", order.EmployeeId),
					order.CreatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			table.Render()
			fmt.Println(tableData.String())
		}
		return nil
	},
}
