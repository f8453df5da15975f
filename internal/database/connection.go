package database

import (
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

type ConnectOpts struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

func (o *ConnectOpts) Validate() error {
	if o.Host == "" {
		return fmt.Errorf("failed to receive a host")
	}
	if o.Port < 1024 || o.Port > 65535 {
		return fmt.Errorf("failed to receive a valid port")
	}
	if o.Database == "" {
		return fmt.Errorf("failed to receive a database name")
	}
	return nil
}

func ConnectMysql(opts ConnectOpts) (*sql.DB, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate connection options: %w", err)
	}

	config := mysql.Config{
		User:                 opts.Username,
		Passwd:               opts.Password,
		Net:                  "tcp",
		Addr:                 net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		DBName:               opts.Database,
		AllowNativePasswords: true,
		ParseTime:            true,
		MultiStatements:      true,
	}

	connection, err := sql.Open("mysql", config.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	connection.SetMaxOpenConns(16)
	connection.SetMaxIdleConns(4)
	connection.SetConnMaxLifetime(5 * time.Minute)
	if err := connection.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return connection, nil
}
