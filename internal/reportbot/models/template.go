package models

import (
	"database/sql"
	"reportdesk/internal/reports"
	"time"

	"github.com/google/uuid"
)

// ReportTemplate is an admin-configured submission template handed to
// employees when they start a report flow
type ReportTemplate struct {
	Id   string `json:"id"`
	Name string `json:"name"`

	// Type is the order type this template applies to
	Type reports.OrderType `json:"type"`

	// Content is the template text; {submitter}, {date} and {time}
	// placeholders are substituted before sending
	Content string `json:"content"`

	// IsDefault marks the template handed out when no template is
	// requested by name
	IsDefault bool `json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
}

type GetDefaultTemplateV1Opts struct {
	Db *sql.DB

	Type reports.OrderType
}

func GetDefaultTemplateV1(opts GetDefaultTemplateV1Opts) (*ReportTemplate, error) {
	var template ReportTemplate
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT
				id,
				name,
				type,
				content,
				is_default,
				created_at
			FROM report_templates
			WHERE type = ?
				AND is_default = 1
			ORDER BY created_at DESC
			LIMIT 1
		`,
		Args:     []any{string(opts.Type)},
		FnSource: "models.GetDefaultTemplateV1",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(
				&template.Id,
				&template.Name,
				&template.Type,
				&template.Content,
				&template.IsDefault,
				&template.CreatedAt,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &template, nil
}

type CreateTemplateV1Opts struct {
	Db *sql.DB

	Name      string
	Type      reports.OrderType
	Content   string
	IsDefault bool
}

func CreateTemplateV1(opts CreateTemplateV1Opts) (string, error) {
	templateUuid := uuid.NewString()
	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO report_templates(
				id,
				name,
				type,
				content,
				is_default
			) VALUES (?, ?, ?, ?, ?)
		`,
		Args: []any{
			templateUuid,
			opts.Name,
			string(opts.Type),
			opts.Content,
			opts.IsDefault,
		},
		FnSource:     "models.CreateTemplateV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return "", err
	}
	return templateUuid, nil
}
