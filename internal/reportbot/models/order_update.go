package models

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reportdesk/internal/reports"
)

type ResolveOrderV1Opts struct {
	Db *sql.DB

	// Id is the order's UUID
	Id string

	// Status is the terminal status to transition to; must be one of
	// approved/rejected/approved_modified
	Status reports.OrderStatus

	ApproverId   int64
	ApproverName string

	// Surface is the channel the resolving action came from
	Surface reports.ApprovalSurface

	// RejectionReason is recorded when Status is rejected
	RejectionReason *string

	// ModifiedContent is recorded when Status is approved_modified
	ModifiedContent *string
}

// ResolveOrderV1 transitions a pending order into a terminal status. The
// `status = 'pending'` predicate is the concurrency control: of two
// racing resolutions exactly one update matches a row, the other
// receives ErrorAlreadyProcessed
func ResolveOrderV1(opts ResolveOrderV1Opts) error {
	if !opts.Status.IsTerminal() {
		return fmt.Errorf("models.ResolveOrderV1: status[%s] is not terminal: %w", opts.Status, ErrorInvalidInput)
	}
	err := executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE orders
				SET status = ?,
					approver_id = ?,
					approver_name = ?,
					approved_at = NOW(),
					approval_surface = ?,
					rejection_reason = ?,
					modified_content = COALESCE(?, modified_content),
					modified_at = CASE WHEN ? IS NULL THEN modified_at ELSE NOW() END
				WHERE id = ?
					AND status = 'pending'
		`,
		Args: []any{
			string(opts.Status),
			opts.ApproverId,
			opts.ApproverName,
			string(opts.Surface),
			opts.RejectionReason,
			opts.ModifiedContent,
			opts.ModifiedContent,
			opts.Id,
		},
		FnSource:     "models.ResolveOrderV1",
		RowsAffected: oneRowAffected,
	})
	if err != nil {
		if errors.Is(err, ErrorRowsAffectedCheckFailed) {
			return fmt.Errorf("order[%s] is not pending: %w", opts.Id, ErrorAlreadyProcessed)
		}
		return err
	}
	return nil
}

type SetOrderGroupMessagesV1Opts struct {
	Db *sql.DB

	// Id is the order's UUID
	Id string

	// GroupMessageIds maps admin group chat ids to the notification
	// message sent in each
	GroupMessageIds map[int64]int
}

// SetOrderGroupMessagesV1 records where an order's notification landed
// in each admin group so resolutions can edit those messages later
func SetOrderGroupMessagesV1(opts SetOrderGroupMessagesV1Opts) error {
	serialized, err := json.Marshal(opts.GroupMessageIds)
	if err != nil {
		return fmt.Errorf("models.SetOrderGroupMessagesV1: failed to serialise message ids: %w", err)
	}
	return executeMysqlUpdate(mysqlQueryInput{
		Db: opts.Db,
		Stmt: `
			UPDATE orders
				SET group_message_ids = ?
				WHERE id = ?
		`,
		Args: []any{
			string(serialized),
			opts.Id,
		},
		FnSource:     "models.SetOrderGroupMessagesV1",
		RowsAffected: oneRowAffected,
	})
}
