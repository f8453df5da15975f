package models

import (
	"database/sql"
)

// OrderStats is the aggregate view consumed by the web dashboard
type OrderStats struct {
	TotalOrders    int64 `json:"totalOrders"`
	PendingOrders  int64 `json:"pendingOrders"`
	ApprovedOrders int64 `json:"approvedOrders"`
	RejectedOrders int64 `json:"rejectedOrders"`

	// *Total sums are over approved (including approved-modified)
	// orders only
	DepositTotal    string `json:"depositTotal"`
	WithdrawalTotal string `json:"withdrawalTotal"`
	RefundTotal     string `json:"refundTotal"`
}

type GetOrderStatsV1Opts struct {
	Db *sql.DB
}

func GetOrderStatsV1(opts GetOrderStatsV1Opts) (*OrderStats, error) {
	var stats OrderStats
	if err := executeMysqlSelect(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			SELECT
				COUNT(*) AS total_orders,
				COALESCE(SUM(status = 'pending'), 0) AS pending_orders,
				COALESCE(SUM(status IN ('approved', 'approved_modified')), 0) AS approved_orders,
				COALESCE(SUM(status = 'rejected'), 0) AS rejected_orders,
				COALESCE(SUM(CASE WHEN type = 'deposit' AND status IN ('approved', 'approved_modified') THEN CAST(amount AS DECIMAL(18, 2)) ELSE 0 END), 0) AS deposit_total,
				COALESCE(SUM(CASE WHEN type = 'withdrawal' AND status IN ('approved', 'approved_modified') THEN CAST(amount AS DECIMAL(18, 2)) ELSE 0 END), 0) AS withdrawal_total,
				COALESCE(SUM(CASE WHEN type = 'refund' AND status IN ('approved', 'approved_modified') THEN CAST(amount AS DECIMAL(18, 2)) ELSE 0 END), 0) AS refund_total
			FROM orders
		`,
		FnSource: "models.GetOrderStatsV1",
		ProcessRow: func(row *sql.Row) error {
			return row.Scan(
				&stats.TotalOrders,
				&stats.PendingOrders,
				&stats.ApprovedOrders,
				&stats.RejectedOrders,
				&stats.DepositTotal,
				&stats.WithdrawalTotal,
				&stats.RefundTotal,
			)
		},
	}); err != nil {
		return nil, err
	}
	return &stats, nil
}
