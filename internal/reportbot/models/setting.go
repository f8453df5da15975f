package models

import (
	"database/sql"
)

const (
	// SettingGroupActivationCode holds the bcrypt hash of the code a
	// group chat must enter to register as an admin group
	SettingGroupActivationCode = "activation-code-group"

	// SettingAdminActivationCode holds the bcrypt hash of the code a
	// user must enter to unlock the personal admin panel
	SettingAdminActivationCode = "activation-code-admin"
)

type GetSettingV1Opts struct {
	Db *sql.DB

	Name string
}

func GetSettingV1(opts GetSettingV1Opts) (string, error) {
	var value string
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT value
			FROM settings
			WHERE name = ?
		`,
		Args:     []any{opts.Name},
		FnSource: "models.GetSettingV1",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(&value)
		},
	}); err != nil {
		return "", err
	}
	return value, nil
}

type SetSettingV1Opts struct {
	Db *sql.DB

	Name  string
	Value string
}

func SetSettingV1(opts SetSettingV1Opts) error {
	return executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO settings(
				name,
				value
			) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE
				value = VALUES(value)
		`,
		Args: []any{
			opts.Name,
			opts.Value,
		},
		FnSource: "models.SetSettingV1",
	})
}
