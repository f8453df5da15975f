package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"reportdesk/internal/reports"
	"strings"
	"time"
)

// Order is a single submitted financial report moving through the
// approval lifecycle
type Order struct {
	// Id is a UUID that identifies the order uniquely
	Id string `json:"id"`

	// OrderNumber is the human-facing identifier shown in chats and on
	// the dashboard; unique across all orders
	OrderNumber string `json:"orderNumber"`

	// Type is one of deposit/withdrawal/refund
	Type reports.OrderType `json:"type"`

	// Status is the order's position in the approval lifecycle
	Status reports.OrderStatus `json:"status"`

	// EmployeeId references the submitting employee by their chat
	// platform user id
	EmployeeId int64 `json:"employeeId"`

	// Amount is the decimal amount as a string, taken from the
	// extracted fields at submission time
	Amount string `json:"amount"`

	// Content is the raw free-text submission
	Content string `json:"content"`

	// ModifiedContent holds the admin's corrected content when the
	// order was modified
	ModifiedContent *string `json:"modifiedContent"`

	ModifiedAt *time.Time `json:"modifiedAt"`

	ApproverId   *int64  `json:"approverId"`
	ApproverName *string `json:"approverName"`

	ApprovedAt *time.Time `json:"approvedAt"`

	// RejectionReason is present only when the order was rejected
	RejectionReason *string `json:"rejectionReason"`

	// ApprovalSurface is the channel the resolving action came from
	ApprovalSurface *string `json:"approvalSurface"`

	CustomerName     *string                  `json:"customerName"`
	ProjectName      *string                  `json:"projectName"`
	AmountExtracted  *string                  `json:"amountExtracted"`
	ExtractionStatus reports.ExtractionStatus `json:"extractionStatus"`

	// GroupMessageIds maps an admin group chat id to the id of the
	// notification message sent there, so resolved orders can have
	// their stale action buttons cleared in every group
	GroupMessageIds map[int64]int `json:"groupMessageIds"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// DisplayContent returns the content an approver should act on: the
// modified content when present, the original otherwise
func (o Order) DisplayContent() string {
	if o.ModifiedContent != nil && *o.ModifiedContent != "" {
		return *o.ModifiedContent
	}
	return o.Content
}

var orderColumns = strings.Join([]string{
	"id",
	"order_number",
	"type",
	"status",
	"employee_id",
	"amount",
	"content",
	"modified_content",
	"modified_at",
	"approver_id",
	"approver_name",
	"approved_at",
	"rejection_reason",
	"approval_surface",
	"customer_name",
	"project_name",
	"amount_extracted",
	"extraction_status",
	"group_message_ids",
	"created_at",
	"updated_at",
}, ",\n\t\t\t\t")

type orderScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row orderScanner) (*Order, error) {
	var order Order
	var groupMessageIds sql.NullString
	if err := row.Scan(
		&order.Id,
		&order.OrderNumber,
		&order.Type,
		&order.Status,
		&order.EmployeeId,
		&order.Amount,
		&order.Content,
		&order.ModifiedContent,
		&order.ModifiedAt,
		&order.ApproverId,
		&order.ApproverName,
		&order.ApprovedAt,
		&order.RejectionReason,
		&order.ApprovalSurface,
		&order.CustomerName,
		&order.ProjectName,
		&order.AmountExtracted,
		&order.ExtractionStatus,
		&groupMessageIds,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	order.GroupMessageIds = map[int64]int{}
	if groupMessageIds.Valid && groupMessageIds.String != "" {
		if err := json.Unmarshal([]byte(groupMessageIds.String), &order.GroupMessageIds); err != nil {
			return nil, fmt.Errorf("failed to parse group message ids of order[%s]: %w", order.Id, err)
		}
	}
	return &order, nil
}

// GenerateOrderNumber derives a sortable human-facing order number from
// the order type and submission time, eg. D20260901120003-4821
func GenerateOrderNumber(orderType reports.OrderType, at time.Time) string {
	prefix := "O"
	switch orderType {
	case reports.OrderTypeDeposit:
		prefix = "D"
	case reports.OrderTypeWithdrawal:
		prefix = "W"
	case reports.OrderTypeRefund:
		prefix = "R"
	}
	return fmt.Sprintf("%s%s-%04d", prefix, at.Format("20060102150405"), rand.Intn(10000))
}
