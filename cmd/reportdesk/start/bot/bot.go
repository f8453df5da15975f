package bot

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"reportdesk/internal/audit"
	"reportdesk/internal/cache"
	"reportdesk/internal/cli"
	"reportdesk/internal/common"
	"reportdesk/internal/database"
	"reportdesk/internal/integrations/telegram"
	"reportdesk/internal/reportbot"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
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
		Name:         "listen-addr",
		DefaultValue: "0.0.0.0:12380",
		Usage:        "defines the address which the webhook listener and api binds to",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "telegram-bot-token",
		DefaultValue: "",
		Usage:        "the telegram bot token used to send and edit messages",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "telegram-webhook-secret",
		DefaultValue: "",
		Usage:        "the secret telegram echoes back in the X-Telegram-Bot-Api-Secret-Token header",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "api-token",
		DefaultValue: "",
		Usage:        "the bearer token protecting the dashboard api",
		Type:         cli.FlagTypeString,
	},
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
		Name:         "redis-enabled",
		DefaultValue: true,
		Usage:        "when this flag is specified, redis is used as the cache",
		Type:         cli.FlagTypeBool,
	},
	{
		Name:         "redis-addr",
		DefaultValue: "localhost:6379",
		Usage:        "defines the hostname (including port) of the redis server",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "redis-username",
		DefaultValue: "reportdesk",
		Usage:        "defines the username used to login to redis",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "redis-password",
		DefaultValue: "password",
		Usage:        "defines the password used to login to redis",
		Type:         cli.FlagTypeString,
	},
	{
		Name:         "mongo-enabled",
		DefaultValue: false,
		Usage:        "when this flag is specified, audit logs are persisted to mongo",
		Type:         cli.FlagTypeBool,
	},
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
}

var Command = &cobra.Command{
	Use:     "bot",
	Aliases: []string{"b"},
	Short:   "Starts the report bot",
	Long:    "Starts the report bot which receives telegram webhook updates, runs the submission and approval workflows, and exposes the dashboard api",
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
		logrus.Infof("mysql connection established")

		var updateCache common.Cache
		isRedisEnabled := viper.GetBool("redis-enabled")
		logrus.Debugf("redis-enabled status: %v", isRedisEnabled)
		if isRedisEnabled {
			redisCache, err := cache.NewRedis(cache.NewRedisOpts{
				Addr:        viper.GetString("redis-addr"),
				Username:    viper.GetString("redis-username"),
				Password:    viper.GetString("redis-password"),
				ServiceLogs: serviceLogs,
			})
			if err != nil {
				return fmt.Errorf("failed to initialise redis cache: %s", err)
			}
			updateCache = redisCache
			logrus.Infof("redis client initialised")
		} else {
			updateCache = cache.NewMemory()
			logrus.Warnf("using the in-memory cache, webhook deduplication will not survive restarts")
		}

		isMongoEnabled := viper.GetBool("mongo-enabled")
		logrus.Debugf("mongo-enabled status: %v", isMongoEnabled)
		if isMongoEnabled {
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
			logrus.Infof("audit logger initialised")
		}

		telegramBotToken := viper.GetString("telegram-bot-token")
		if telegramBotToken == "" {
			return fmt.Errorf("failed to receive a telegram bot token")
		}
		done := make(chan common.Done)
		telegramBot, err := telegram.New(telegram.NewOpts{
			Token:       telegramBotToken,
			Done:        done,
			ServiceLogs: serviceLogs,
		})
		if err != nil {
			return fmt.Errorf("failed to initialise telegram client: %s", err)
		}
		logrus.Infof("telegram client initialised")

		service, err := reportbot.NewService(reportbot.NewServiceOpts{
			Storage:     reportbot.NewMysqlStorage(databaseConnection),
			Cache:       updateCache,
			Bot:         telegramBot,
			ServiceLogs: serviceLogs,
		})
		if err != nil {
			return fmt.Errorf("failed to initialise the report service: %s", err)
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
		go func() {
			sig := <-sigs
			logrus.Infof("received signal: %s", sig)
			telegramBot.Stop()
			done <- common.Done{}
		}()

		logrus.Debugf("starting http server...")
		return reportbot.StartHttpServer(reportbot.StartHttpServerOpts{
			Addr:          viper.GetString("listen-addr"),
			ApiToken:      viper.GetString("api-token"),
			WebhookSecret: viper.GetString("telegram-webhook-secret"),
			Done:          done,
			Service:       service,
			ServiceLogs:   serviceLogs,
		})
	},
}
