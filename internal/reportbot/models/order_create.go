package models

import (
	"database/sql"
	"reportdesk/internal/reports"
	"time"

	"github.com/google/uuid"
)

type CreateOrderV1Opts struct {
	Db *sql.DB

	// Type is the report type the employee was submitting for
	Type reports.OrderType

	// EmployeeId is the chat platform user id of the submitter
	EmployeeId int64

	// Content is the raw submission text
	Content string

	// Fields is the parser output for Content
	Fields reports.ExtractedFields
}

// CreateOrderV1 persists a new order in `pending` status and returns it
func CreateOrderV1(opts CreateOrderV1Opts) (*Order, error) {
	now := time.Now()
	order := Order{
		Id:               uuid.NewString(),
		OrderNumber:      GenerateOrderNumber(opts.Type, now),
		Type:             opts.Type,
		Status:           reports.StatusPending,
		EmployeeId:       opts.EmployeeId,
		Amount:           opts.Fields.AmountExtracted,
		Content:          opts.Content,
		ExtractionStatus: opts.Fields.Status,
		GroupMessageIds:  map[int64]int{},
		CreatedAt:        now,
	}
	if opts.Fields.AmountExtracted == "" {
		order.Amount = "0"
	}
	var customerName, projectName, amountExtracted *string
	if opts.Fields.CustomerName != "" {
		customerName = &opts.Fields.CustomerName
	}
	if opts.Fields.ProjectName != "" {
		projectName = &opts.Fields.ProjectName
	}
	if opts.Fields.AmountExtracted != "" {
		amountExtracted = &opts.Fields.AmountExtracted
	}
	order.CustomerName = customerName
	order.ProjectName = projectName
	order.AmountExtracted = amountExtracted

	if err := executeMysqlInsert(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			INSERT INTO orders(
				id,
				order_number,
				type,
				status,
				employee_id,
				amount,
				content,
				customer_name,
				project_name,
				amount_extracted,
				extraction_status
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
		Args: []any{
			order.Id,
			order.OrderNumber,
			string(order.Type),
			string(order.Status),
			order.EmployeeId,
			order.Amount,
			order.Content,
			customerName,
			projectName,
			amountExtracted,
			string(order.ExtractionStatus),
		},
		FnSource:     "models.CreateOrderV1",
		RowsAffected: oneRowAffected,
	}); err != nil {
		return nil, err
	}
	return &order, nil
}
