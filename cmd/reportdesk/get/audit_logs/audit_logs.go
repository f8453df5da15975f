package audit_logs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"reportdesk/internal/audit"
	"reportdesk/internal/cli"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func init() {
	flags.AddToCommand(Command)
}

var flags cli.Flags = cli.Flags{
	{
		Name:         "mongo-host",
		DefaultValue: "127.0.0.1",
		Usage:        "defines the hostname of the mongo server",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mongo-port",
		DefaultValue: 27017,
		Usage:        "defines the port which the mongo server is listening on",
		Type:         cli.FlagTypeInteger,
	},
	{
		Name:         "mongo-user",
		DefaultValue: "reportdesk",
		Usage:        "defines the username used to login to mongo",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mongo-password",
		DefaultValue: "password",
		Usage:        "defines the password used to login to mongo",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "entity-id",
		Short:        'e',
		DefaultValue: "",
		Usage:        "the id of the entity whose trail to retrieve (a user id or a group chat id)",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "entity-type",
		DefaultValue: string(audit.UserEntity),
		Usage:        fmt.Sprintf("the type of the entity (one of [%s, %s])", audit.UserEntity, audit.AdminGroupEntity),
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "limit",
		DefaultValue: 50,
		Usage:        "defines how many audit log entries to return",
		Type:         cli.FlagTypeInteger,
	},
}

var Command = &cobra.Command{
	Use:     "audit-logs",
	Aliases: []string{"al"},
	Short:   "Retrieves the audit trail of a user or admin group",
	PreRun: func(cmd *cobra.Command, args []string) {
		flags.BindViper(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		entityId := viper.GetString("entity-id")
		if entityId == "" {
			return fmt.Errorf("failed to receive an entity id")
		}
		entityType := audit.EntityType(viper.GetString("entity-type"))
		switch entityType {
		case audit.UserEntity, audit.AdminGroupEntity:
		default:
			return fmt.Errorf("failed to recognise entity type '%s'", entityType)
		}

		mongoAddr := net.JoinHostPort(
			viper.GetString("mongo-host"),
			strconv.Itoa(viper.GetInt("mongo-port")),
		)
		mongoOpts := options.Client().
			SetHosts([]string{mongoAddr}).
			SetAuth(options.Credential{
				Username: viper.GetString("mongo-user"),
				Password: viper.GetString("mongo-password"),
			})
		mongoContext, cancelMongoContext := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancelMongoContext()
		mongoConnection, err := mongo.Connect(mongoContext, mongoOpts)
		if err != nil {
			return fmt.Errorf("failed to create connection to mongo: %s", err)
		}
		if err := audit.InitMongo(mongoConnection); err != nil {
			return fmt.Errorf("failed to initialise the audit logger: %s", err)
		}

		entries, err := audit.GetByEntity(entityId, entityType, time.Now(), int64(viper.GetInt("limit")))
		if err != nil {
			return fmt.Errorf("failed to retrieve audit logs: %s", err)
		}

		switch viper.GetString("output") {
		case "json":
			o, _ := json.MarshalIndent(entries, "", "  ")
			fmt.Println(string(o))
		case "text":
			fallthrough
		default:
			var tableData bytes.Buffer
			table := tablewriter.NewWriter(&tableData)
			table.Header([]string{"timestamp", "status", "description"})
			for _, entry := range entries {
				table.Append([]string{
					entry.Timestamp.Format("2006-01-02 15:04:05"),
					string(entry.Status),
					audit.Interpret(entry),
				})
			}
			table.Render()
			fmt.Println(tableData.String())
		}
		return nil
	},
}
