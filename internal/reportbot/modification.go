package reportbot

import (
	"errors"
	"fmt"
	"reportdesk/internal/common"
	"reportdesk/internal/conversation"
	"reportdesk/internal/integrations/telegram"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
)

// startModification moves the modify sub-flow to the admin's private
// chat: the order's content is sent there and the next text from the
// admin becomes the corrected content. The persisted status stays
// pending until the correction lands, so a racing approve/reject can
// still win
func (s *Service) startModification(update *telegram.Update, user *models.User, orderId string) {
	order, err := s.Storage.GetOrder(orderId)
	if err != nil {
		s.answerCallback(update, "This order no longer exists")
		return
	}
	if order.Status != reports.StatusPending {
		s.answerCallback(update, "This order has already been processed")
		return
	}

	// a private chat's id equals the user's id on this platform
	privateChatId := user.Id
	unlock := s.States.LockChat(privateChatId)
	defer unlock()

	if _, err := s.Bot.SendMessage(privateChatId, fmt.Sprintf(
		"✏️ Modifying report %s; send the corrected report as a single message, or send /cancel to stop\n\n%s",
		order.OrderNumber,
		order.DisplayContent(),
	)); err != nil {
		s.log(common.LogLevelWarn, "failed to open modification flow with user[%v]: %s", user.Id, err)
		s.answerCallback(update, "Please open a private chat with me first, then press Modify again")
		return
	}
	s.States.Put(privateChatId, conversation.OrderModificationState{
		OrderId:         orderId,
		OriginalContent: order.DisplayContent(),
		AdminId:         user.Id,
	})
	s.answerCallback(update, "Check your private chat to modify this order")
}

// handleModificationText completes the modify sub-flow with the admin's
// corrected text, approving the order as modified
func (s *Service) handleModificationText(update *telegram.Update, user *models.User, state conversation.OrderModificationState) {
	// role is re-verified at completion time; it may have changed since
	// the flow started
	if !user.IsActiveAdmin() {
		s.States.Del(update.ChatId)
		s.send(update.ChatId, "You are no longer authorised to modify orders")
		return
	}

	modifiedContent := update.Message
	err := s.ResolveOrder(ResolveOrderRequest{
		OrderId:         state.OrderId,
		Status:          reports.StatusApprovedModified,
		ApproverId:      user.Id,
		ApproverName:    user.Name(),
		Surface:         reports.SurfaceBotPanel,
		ModifiedContent: &modifiedContent,
		OriginalContent: state.OriginalContent,
	})
	switch {
	case err == nil:
		s.States.Del(update.ChatId)
		s.send(update.ChatId, "✅ The order has been modified and approved", s.menuFor(user))
	case errors.Is(err, models.ErrorAlreadyProcessed):
		s.States.Del(update.ChatId)
		s.send(update.ChatId, "This order was already processed by someone else while you were editing", s.menuFor(user))
	case errors.Is(err, models.ErrorNotFound):
		s.States.Del(update.ChatId)
		s.send(update.ChatId, "This order no longer exists", s.menuFor(user))
	default:
		s.log(common.LogLevelError, "failed to complete modification of order[%s]: %s", state.OrderId, err)
		s.send(update.ChatId, "🙇 Apologies, something went wrong internally; send the corrected report again or /cancel")
	}
}
