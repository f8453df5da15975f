package models

import (
	"database/sql"
	"fmt"
	"reportdesk/internal/reports"
)

type ListOrdersV1Opts struct {
	Db *sql.DB

	// Status when set limits the listing to orders in that status
	Status *reports.OrderStatus

	// EmployeeId when set limits the listing to a single submitter
	EmployeeId *int64

	// Limit caps the number of returned orders; defaults to 50
	Limit int
}

func ListOrdersV1(opts ListOrdersV1Opts) ([]Order, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	stmt := fmt.Sprintf(`
		SELECT
			%s
		FROM orders
	`, orderColumns)
	conditions := ""
	args := []any{}
	if opts.Status != nil {
		conditions = "WHERE status = ?"
		args = append(args, string(*opts.Status))
	}
	if opts.EmployeeId != nil {
		if conditions == "" {
			conditions = "WHERE employee_id = ?"
		} else {
			conditions += " AND employee_id = ?"
		}
		args = append(args, *opts.EmployeeId)
	}
	stmt = fmt.Sprintf("%s %s ORDER BY created_at DESC LIMIT %v", stmt, conditions, limit)

	orders := []Order{}
	if err := executeMysqlSelects(mysqlQueryInput{
		Db:       opts.Db,
		Stmt:     stmt,
		Args:     args,
		FnSource: "models.ListOrdersV1",
		ProcessRows: func(rows *sql.Rows) error {
			order, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, *order)
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return orders, nil
}
