package models

import (
	"database/sql"
	"reportdesk/internal/reports"
	"time"
)

// User is an employee or admin keyed by their chat platform user id
type User struct {
	// Id is the chat platform's numeric user id
	Id int64 `json:"id"`

	Username    *string `json:"username"`
	DisplayName *string `json:"displayName"`

	// Role is either employee or admin
	Role reports.UserRole `json:"role"`

	// IsDisabled blocks the user from submitting and approving
	IsDisabled bool `json:"isDisabled"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Name returns the best display label we have for the user
func (u User) Name() string {
	if u.DisplayName != nil && *u.DisplayName != "" {
		return *u.DisplayName
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return "unknown"
}

// IsActiveAdmin reports whether the user may perform approval actions
func (u User) IsActiveAdmin() bool {
	return u.Role == reports.RoleAdmin && !u.IsDisabled
}

type GetUserV1Opts struct {
	Db *sql.DB

	// Id is the chat platform's numeric user id
	Id int64
}

func GetUserV1(opts GetUserV1Opts) (*User, error) {
	var user User
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT
				id,
				username,
				display_name,
				role,
				is_disabled,
				created_at,
				updated_at
			FROM users
			WHERE id = ?
		`,
		Args:     []any{opts.Id},
		FnSource: "models.GetUserV1",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(
				&user.Id,
				&user.Username,
				&user.DisplayName,
				&user.Role,
				&user.IsDisabled,
				&user.CreatedAt,
				&user.UpdatedAt,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

type UpsertUserV1Opts struct {
	Db *sql.DB

	Id          int64
	Username    string
	DisplayName string

	// Role is only applied on first insert; an existing user's role is
	// never demoted by a profile refresh
	Role reports.UserRole
}

// UpsertUserV1 registers a user on first contact and refreshes their
// profile fields on subsequent contacts; an update carrying empty
// profile fields never erases known values, since Telegram profiles
// may omit the username
func UpsertUserV1(opts UpsertUserV1Opts) error {
	role := opts.Role
	if role == "" {
		role = reports.RoleEmployee
	}
	return executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO users(
				id,
				username,
				display_name,
				role
			) VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				username = COALESCE(NULLIF(VALUES(username), ''), username),
				display_name = COALESCE(NULLIF(VALUES(display_name), ''), display_name)
		`,
		Args: []any{
			opts.Id,
			opts.Username,
			opts.DisplayName,
			string(role),
		},
		FnSource: "models.UpsertUserV1",
	})
}

type SetUserRoleV1Opts struct {
	Db *sql.DB

	Id   int64
	Role reports.UserRole
}

func SetUserRoleV1(opts SetUserRoleV1Opts) error {
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE users
				SET role = ?
				WHERE id = ?
		`,
		Args: []any{
			string(opts.Role),
			opts.Id,
		},
		FnSource:     "models.SetUserRoleV1",
		RowsAffected: oneRowAffected,
	})
}
