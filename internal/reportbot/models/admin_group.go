package models

import (
	"database/sql"
	"time"
)

// AdminGroup is a group chat registered to receive pending-order
// notifications; only active groups may approve
type AdminGroup struct {
	// ChatId is the chat platform's numeric group chat id
	ChatId int64 `json:"chatId"`

	Title *string `json:"title"`

	// IsActive gatekeeps whether approval actions from this chat are
	// honoured
	IsActive bool `json:"isActive"`

	ActivatedBy *int64     `json:"activatedBy"`
	ActivatedAt *time.Time `json:"activatedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type GetAdminGroupV1Opts struct {
	Db *sql.DB

	ChatId int64
}

func GetAdminGroupV1(opts GetAdminGroupV1Opts) (*AdminGroup, error) {
	var group AdminGroup
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT
				chat_id,
				title,
				is_active,
				activated_by,
				activated_at,
				created_at
			FROM admin_groups
			WHERE chat_id = ?
		`,
		Args:     []any{opts.ChatId},
		FnSource: "models.GetAdminGroupV1",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(
				&group.ChatId,
				&group.Title,
				&group.IsActive,
				&group.ActivatedBy,
				&group.ActivatedAt,
				&group.CreatedAt,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &group, nil
}

type ListActiveAdminGroupsV1Opts struct {
	Db *sql.DB
}

func ListActiveAdminGroupsV1(opts ListActiveAdminGroupsV1Opts) ([]AdminGroup, error) {
	groups := []AdminGroup{}
	if err := executeMysqlSelects(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT
				chat_id,
				title,
				is_active,
				activated_by,
				activated_at,
				created_at
			FROM admin_groups
			WHERE is_active = 1
		`,
		FnSource: "models.ListActiveAdminGroupsV1",
		ProcessRows: func(rows *sql.Rows) error {
			var group AdminGroup
			if err := rows.Scan(
				&group.ChatId,
				&group.Title,
				&group.IsActive,
				&group.ActivatedBy,
				&group.ActivatedAt,
				&group.CreatedAt,
			); err != nil {
				return err
			}
			groups = append(groups, group)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return groups, nil
}

type ActivateAdminGroupV1Opts struct {
	Db *sql.DB

	ChatId      int64
	Title       string
	ActivatedBy int64
}

// ActivateAdminGroupV1 registers the group chat on first activation and
// marks it active; re-activating an already active group is a no-op
func ActivateAdminGroupV1(opts ActivateAdminGroupV1Opts) error {
	return executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO admin_groups(
				chat_id,
				title,
				is_active,
				activated_by,
				activated_at
			) VALUES (?, ?, 1, ?, NOW())
			ON DUPLICATE KEY UPDATE
				title = VALUES(title),
				is_active = 1,
				activated_by = VALUES(activated_by),
				activated_at = NOW()
		`,
		Args: []any{
			opts.ChatId,
			opts.Title,
			opts.ActivatedBy,
		},
		FnSource: "models.ActivateAdminGroupV1",
	})
}

type DeactivateAdminGroupV1Opts struct {
	Db *sql.DB

	ChatId int64
}

func DeactivateAdminGroupV1(opts DeactivateAdminGroupV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE admin_groups
				SET is_active = 0
				WHERE chat_id = ?
		`,
		Args:         []any{opts.ChatId},
		FnSource:     "models.DeactivateAdminGroupV1",
		RowsAffected: oneRowAffected,
	})
}
