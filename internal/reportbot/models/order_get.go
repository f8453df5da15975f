package models

import (
	"database/sql"
	"fmt"
)

type GetOrderV1Opts struct {
	Db *sql.DB

	// Id is the order's UUID
	Id string
}

func GetOrderV1(opts GetOrderV1Opts) (*Order, error) {
	var order *Order
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: fmt.Sprintf(`
			SELECT
				%s
			FROM orders
			WHERE id = ?
		`, orderColumns),
		Args:     []any{opts.Id},
		FnSource: "models.GetOrderV1",
		ProcessRow: func(row *sql.Row) error {
			scanned, err := scanOrder(row)
			if err != nil {
				return err
			}
			order = scanned
			return nil
		},
	}); err != nil {
		return nil, err
	}
	return order, nil
}
