package reportbot

import (
	"errors"
	"fmt"
	"reportdesk/internal/audit"
	"reportdesk/internal/common"
	"reportdesk/internal/conversation"
	"reportdesk/internal/integrations/telegram"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
	"time"
)

// startSubmission hands the employee the report template for the chosen
// type and puts the chat into submission state; the next non-command
// text from this chat is treated as the filled-in report
func (s *Service) startSubmission(update *telegram.Update, user *models.User, orderType reports.OrderType) {
	template, err := s.Storage.GetDefaultTemplate(orderType)
	if err != nil {
		s.log(common.LogLevelError, "failed to fetch default template for type[%s]: %s", orderType, err)
		s.send(update.ChatId, "🙇 No report template is configured for this type yet; please contact an administrator")
		return
	}
	rendered := reports.RenderTemplate(template.Content, user.Name(), time.Now())
	s.States.Put(update.ChatId, conversation.ReportSubmissionState{
		Type:       orderType,
		EmployeeId: user.Id,
	})
	s.send(update.ChatId, fmt.Sprintf(
		"📝 Fill in the template below and send it back as a single message, or send /cancel to stop\n\n%s",
		rendered,
	))
}

// handleSubmissionText runs the parse/validate pipeline over the
// employee's text; a valid submission becomes a pending order which is
// broadcast to every active admin group
func (s *Service) handleSubmissionText(update *telegram.Update, user *models.User, state conversation.ReportSubmissionState) {
	fields := reports.Parse(update.Message, state.Type)
	validation := reports.ValidateSubmission(update.Message, fields)
	if !validation.IsValid {
		// the state stays put so the employee can correct and resend
		s.send(update.ChatId, fmt.Sprintf("⚠️ %s", validation.Message))
		return
	}

	order, err := s.Storage.CreateOrder(state.Type, user.Id, update.Message, fields)
	if err != nil {
		s.log(common.LogLevelError, "failed to create order for user[%v]: %s", user.Id, err)
		s.send(update.ChatId, "🙇 Apologies, something went wrong while saving your report; please try again")
		return
	}
	s.States.Del(update.ChatId)
	ordersSubmittedCounter.WithLabelValues(string(order.Type)).Inc()
	s.log(common.LogLevelInfo, "created order[%s/%s] from user[%v]", order.Id, order.OrderNumber, user.Id)

	if err := audit.Log(audit.LogEntry{
		EntityId:     fmt.Sprintf("%v", user.Id),
		EntityType:   audit.UserEntity,
		Verb:         audit.Submit,
		ResourceId:   order.Id,
		ResourceType: audit.OrderResource,
		Status:       audit.Success,
	}); err != nil && !errors.Is(err, audit.ErrorNotInitialized) {
		s.log(common.LogLevelWarn, "failed to audit submission of order[%s]: %s", order.Id, err)
	}

	// the receipt quotes the submitted report so a busy chat still
	// shows which message became which order
	s.reply(update.ChatId, update.MessageId, createSubmissionReceipt(order), s.menuFor(user))
	s.broadcastNewOrder(order, user.Name())
}

// sendPendingOrders shows an admin the pending queue in their private
// chat, each order with its own action buttons; this is the bot-panel
// approval surface
func (s *Service) sendPendingOrders(update *telegram.Update, user *models.User) {
	if !user.IsActiveAdmin() {
		s.send(update.ChatId, "You are not authorised to view pending orders; use /admin to unlock the admin panel")
		return
	}
	pending := reports.StatusPending
	orders, err := s.Storage.ListOrders(&pending, 10)
	if err != nil {
		s.log(common.LogLevelError, "failed to list pending orders: %s", err)
		s.send(update.ChatId, "🙇 Apologies, something went wrong internally; please try again")
		return
	}
	if len(orders) == 0 {
		s.send(update.ChatId, "There are no pending orders 🎉")
		return
	}
	for _, order := range orders {
		employeeName := fmt.Sprintf("user[%v]", order.EmployeeId)
		if employee, err := s.Storage.GetUser(order.EmployeeId); err == nil {
			employeeName = employee.Name()
		}
		s.send(update.ChatId, createOrderNotification(&order, employeeName), createApprovalKeyboard(order.Id))
	}
}

func (s *Service) sendOrderStats(update *telegram.Update, user *models.User) {
	if !user.IsActiveAdmin() {
		s.send(update.ChatId, "You are not authorised to view statistics; use /admin to unlock the admin panel")
		return
	}
	stats, err := s.Storage.GetOrderStats()
	if err != nil {
		s.log(common.LogLevelError, "failed to fetch order stats: %s", err)
		s.send(update.ChatId, "🙇 Apologies, something went wrong internally; please try again")
		return
	}
	s.send(update.ChatId, fmt.Sprintf(
		"📊 Orders: %v total, %v pending, %v approved, %v rejected\n"+
			"Approved totals: deposits %s, withdrawals %s, refunds %s",
		stats.TotalOrders,
		stats.PendingOrders,
		stats.ApprovedOrders,
		stats.RejectedOrders,
		stats.DepositTotal,
		stats.WithdrawalTotal,
		stats.RefundTotal,
	))
}
