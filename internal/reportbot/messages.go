package reportbot

import (
	"fmt"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
	"strings"
)

var orderTypeLabels = map[reports.OrderType]string{
	reports.OrderTypeDeposit:    "Deposit",
	reports.OrderTypeWithdrawal: "Withdrawal",
	reports.OrderTypeRefund:     "Refund",
}

func orderTypeLabel(orderType reports.OrderType) string {
	if label, ok := orderTypeLabels[orderType]; ok {
		return label
	}
	return string(orderType)
}

// createOrderNotification is the message broadcast to admin groups when
// a new order lands; the approval keyboard is attached separately
func createOrderNotification(order *models.Order, submitterName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 %s report %s\n", orderTypeLabel(order.Type), order.OrderNumber)
	fmt.Fprintf(&b, "Submitted by: %s\n", submitterName)
	if order.CustomerName != nil {
		fmt.Fprintf(&b, "Customer: %s\n", *order.CustomerName)
	}
	if order.ProjectName != nil {
		fmt.Fprintf(&b, "Project: %s\n", *order.ProjectName)
	}
	if order.AmountExtracted != nil {
		fmt.Fprintf(&b, "Amount: %s\n", *order.AmountExtracted)
	}
	fmt.Fprintf(&b, "\n%s", order.Content)
	return b.String()
}

// createResolvedNotification rewrites an order notification after it is
// resolved; this replaces the original message so stale action buttons
// disappear everywhere the order was broadcast
func createResolvedNotification(order *models.Order, status reports.OrderStatus, approverName string, rejectionReason *string) string {
	var b strings.Builder
	switch status {
	case reports.StatusApproved:
		fmt.Fprintf(&b, "✅ %s report %s approved by %s", orderTypeLabel(order.Type), order.OrderNumber, approverName)
	case reports.StatusRejected:
		fmt.Fprintf(&b, "❌ %s report %s rejected by %s", orderTypeLabel(order.Type), order.OrderNumber, approverName)
		if rejectionReason != nil && *rejectionReason != "" {
			fmt.Fprintf(&b, "\nReason: %s", *rejectionReason)
		}
	case reports.StatusApprovedModified:
		fmt.Fprintf(&b, "✏️ %s report %s modified and approved by %s", orderTypeLabel(order.Type), order.OrderNumber, approverName)
	default:
		fmt.Fprintf(&b, "%s report %s is now %s", orderTypeLabel(order.Type), order.OrderNumber, status)
	}
	fmt.Fprintf(&b, "\n\n%s", order.DisplayContent())
	return b.String()
}

// createEmployeeResolutionMessage tells the submitting employee the
// final status of their order, naming the approver and including the
// rejection reason when one was given
func createEmployeeResolutionMessage(order *models.Order, status reports.OrderStatus, approverName string, rejectionReason *string) string {
	switch status {
	case reports.StatusApproved:
		return fmt.Sprintf("✅ Your %s report %s has been approved by %s", strings.ToLower(orderTypeLabel(order.Type)), order.OrderNumber, approverName)
	case reports.StatusRejected:
		message := fmt.Sprintf("❌ Your %s report %s has been rejected by %s", strings.ToLower(orderTypeLabel(order.Type)), order.OrderNumber, approverName)
		if rejectionReason != nil && *rejectionReason != "" {
			message = fmt.Sprintf("%s\nReason: %s", message, *rejectionReason)
		}
		return message
	case reports.StatusApprovedModified:
		return fmt.Sprintf("✏️ Your %s report %s has been modified and approved by %s", strings.ToLower(orderTypeLabel(order.Type)), order.OrderNumber, approverName)
	}
	return fmt.Sprintf("Your report %s is now %s", order.OrderNumber, status)
}

// createModificationDiff lays out the original and modified content
// side-by-side; the employee must be able to see exactly what changed
func createModificationDiff(order *models.Order, originalContent string, modifiedContent string, approverName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✏️ Report %s was modified by %s\n", order.OrderNumber, approverName)
	fmt.Fprintf(&b, "\n— Original —\n%s\n", originalContent)
	fmt.Fprintf(&b, "\n— Modified —\n%s", modifiedContent)
	return b.String()
}

// createSubmissionReceipt acknowledges a valid submission to the
// employee
func createSubmissionReceipt(order *models.Order) string {
	return fmt.Sprintf(
		"📨 Your %s report has been received as %s and is awaiting approval",
		strings.ToLower(orderTypeLabel(order.Type)),
		order.OrderNumber,
	)
}
