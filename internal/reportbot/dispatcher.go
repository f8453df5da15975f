package reportbot

import (
	"errors"
	"fmt"
	"reportdesk/internal/common"
	"reportdesk/internal/conversation"
	"reportdesk/internal/integrations/telegram"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
	"strings"

	tgmodels "github.com/go-telegram/bot/models"
)

// HandleUpdate is the outermost boundary for inbound webhook updates:
// nothing escapes it. The webhook is acknowledged by the http layer
// regardless of what happens here, since a non-2xx would only trigger
// the platform's redelivery storm
func (s *Service) HandleUpdate(update *telegram.Update) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.log(common.LogLevelError, "recovered from panic while handling update[%v]: %v", update.UpdateId, recovered)
		}
	}()
	webhookUpdatesCounter.Inc()

	dedupKey := fmt.Sprintf("%s%v", updateDedupKeyPrefix, update.UpdateId)
	isFirstDelivery, err := s.Cache.SetNx(dedupKey, "1", updateDedupWindow)
	if err != nil {
		// if the dedup window is unavailable we process anyway; a rare
		// duplicate beats dropping live traffic
		s.log(common.LogLevelWarn, "failed to check update[%v] against the dedup window: %s", update.UpdateId, err)
	} else if !isFirstDelivery {
		webhookDuplicatesCounter.Inc()
		s.log(common.LogLevelInfo, "dropping redelivered update[%v]", update.UpdateId)
		return
	}

	switch {
	case update.IsCallback():
		s.handleCallback(update)
	case update.IsGroupChat():
		s.handleGroupMessage(update)
	case update.Message != "":
		s.handlePrivateMessage(update)
	default:
		s.log(common.LogLevelDebug, "ignoring update[%v], nothing to dispatch on", update.UpdateId)
	}
}

// handleGroupMessage ignores everything except explicit commands; the
// bot does not converse in groups
func (s *Service) handleGroupMessage(update *telegram.Update) {
	command := strings.TrimSpace(update.Message)
	// commands in groups may arrive mention-suffixed, eg. /activate@SomeBot
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	if command != CommandActivateGroup {
		s.log(common.LogLevelDebug, "ignoring non-command message in group[%v]", update.ChatId)
		return
	}
	unlock := s.States.LockChat(update.ChatId)
	defer unlock()
	s.startGroupActivation(update)
}

func (s *Service) handlePrivateMessage(update *telegram.Update) {
	s.log(common.LogLevelInfo, "chat[%v] << '%s'", update.ChatId, update.Message)

	if err := s.Storage.UpsertUser(update.SenderId, update.SenderUsername, update.SenderName); err != nil {
		s.log(common.LogLevelWarn, "failed to upsert user[%v]: %s", update.SenderId, err)
	}
	user, err := s.Storage.GetUser(update.SenderId)
	if err != nil {
		s.log(common.LogLevelError, "failed to fetch user[%v]: %s", update.SenderId, err)
		s.send(update.ChatId, "🙇 Apologies, something went wrong internally; please try again")
		return
	}
	if user.IsDisabled {
		s.send(update.ChatId, "Your account has been disabled; please contact an administrator")
		return
	}

	unlock := s.States.LockChat(update.ChatId)
	defer unlock()

	text := strings.TrimSpace(update.Message)

	// cancellation comes before any state dispatch so a user can always
	// escape a stuck flow
	if isCancelKeyword(text) {
		if _, hasState := s.States.Get(update.ChatId); hasState {
			s.States.Del(update.ChatId)
			s.send(update.ChatId, "🚫 Your current flow has been cancelled", s.menuFor(user))
		} else {
			s.send(update.ChatId, "There is nothing to cancel", s.menuFor(user))
		}
		return
	}

	if state, hasState := s.States.Get(update.ChatId); hasState {
		if isMenuButton(text) {
			// a recognised menu button interrupts whatever flow was in
			// progress; the user is told the old flow was abandoned
			s.States.Del(update.ChatId)
			s.send(update.ChatId, "Your previous flow has been abandoned, starting over")
		} else {
			switch activeState := state.(type) {
			case conversation.ReportSubmissionState:
				s.handleSubmissionText(update, user, activeState)
			case conversation.OrderModificationState:
				s.handleModificationText(update, user, activeState)
			default:
				// activation flows are keypad-driven; free text is not input
				s.send(update.ChatId, "Please use the keypad above to enter the code, or send /cancel to stop")
			}
			return
		}
	}

	switch text {
	case CommandStart:
		s.send(update.ChatId, fmt.Sprintf("👋 Welcome %s, use the menu below to submit a report", user.Name()), s.menuFor(user))
	case CommandAdminPanel:
		s.startAdminActivation(update, user)
	case MenuSubmitDeposit:
		s.startSubmission(update, user, reports.OrderTypeDeposit)
	case MenuSubmitWithdrawal:
		s.startSubmission(update, user, reports.OrderTypeWithdrawal)
	case MenuSubmitRefund:
		s.startSubmission(update, user, reports.OrderTypeRefund)
	case MenuPendingOrders:
		s.sendPendingOrders(update, user)
	case MenuOrderStats:
		s.sendOrderStats(update, user)
	default:
		s.send(update.ChatId, "I did not understand that; use the menu below to start a flow", s.menuFor(user))
	}
}

func (s *Service) handleCallback(update *telegram.Update) {
	data := update.CallbackData
	s.log(common.LogLevelInfo, "chat[%v] callback << '%s'", update.ChatId, data)
	switch {
	case strings.HasPrefix(data, callbackPrefixKeypad):
		unlock := s.States.LockChat(update.ChatId)
		defer unlock()
		s.handleKeypadKey(update, strings.TrimPrefix(data, callbackPrefixKeypad))
	case strings.HasPrefix(data, callbackPrefixApprove):
		s.handleOrderCallback(update, reports.StatusApproved, strings.TrimPrefix(data, callbackPrefixApprove))
	case strings.HasPrefix(data, callbackPrefixReject):
		s.handleOrderCallback(update, reports.StatusRejected, strings.TrimPrefix(data, callbackPrefixReject))
	case strings.HasPrefix(data, callbackPrefixModify):
		s.handleOrderCallback(update, reports.StatusApprovedModified, strings.TrimPrefix(data, callbackPrefixModify))
	default:
		s.log(common.LogLevelWarn, "unknown callback data '%s' from chat[%v]", data, update.ChatId)
		s.answerCallback(update, "Unknown action, please try again from the start")
	}
}

// handleOrderCallback verifies the acting user and the originating chat
// before any state mutation; roles come from the authoritative store at
// dispatch time, never from the callback payload
func (s *Service) handleOrderCallback(update *telegram.Update, action reports.OrderStatus, orderId string) {
	user, err := s.Storage.GetUser(update.SenderId)
	if err != nil || !user.IsActiveAdmin() {
		s.answerCallback(update, "You are not authorised to perform this action")
		return
	}
	surface := reports.SurfaceBotPanel
	if update.IsGroupChat() {
		group, err := s.Storage.GetAdminGroup(update.ChatId)
		if err != nil || !group.IsActive {
			s.answerCallback(update, "This group is not an active admin group")
			return
		}
		surface = reports.SurfaceGroupChat
	}

	if action == reports.StatusApprovedModified {
		s.startModification(update, user, orderId)
		return
	}

	err = s.ResolveOrder(ResolveOrderRequest{
		OrderId:         orderId,
		Status:          action,
		ApproverId:      user.Id,
		ApproverName:    user.Name(),
		Surface:         surface,
		OriginChatId:    update.ChatId,
		OriginMessageId: update.MessageId,
	})
	switch {
	case err == nil:
		s.answerCallback(update, "Done")
	case errors.Is(err, models.ErrorAlreadyProcessed):
		s.answerCallback(update, "This order has already been processed")
	case errors.Is(err, models.ErrorNotFound):
		s.answerCallback(update, "This order no longer exists")
	default:
		s.log(common.LogLevelError, "failed to resolve order[%s]: %s", orderId, err)
		s.answerCallback(update, "Something went wrong internally, please try again")
	}
}

// menuFor returns the persistent reply menu matching the user's role
func (s *Service) menuFor(user *models.User) tgmodels.ReplyMarkup {
	if user.IsActiveAdmin() {
		return createAdminMenu()
	}
	return createEmployeeMenu()
}

func isCancelKeyword(text string) bool {
	for _, keyword := range cancelKeywords {
		if strings.EqualFold(text, keyword) {
			return true
		}
	}
	return false
}

// send logs transport failures instead of surfacing them; outbound
// messaging is best-effort at the dispatch layer
func (s *Service) send(chatId int64, message string, markup ...tgmodels.ReplyMarkup) {
	if _, err := s.Bot.SendMessage(chatId, message, markup...); err != nil {
		s.log(common.LogLevelWarn, "failed to send message to chat[%v]: %s", chatId, err)
	}
}

func (s *Service) reply(chatId int64, replyMessageId int, message string, markup ...tgmodels.ReplyMarkup) {
	if err := s.Bot.ReplyMessage(chatId, replyMessageId, message, markup...); err != nil {
		s.log(common.LogLevelWarn, "failed to reply to message[%v] in chat[%v]: %s", replyMessageId, chatId, err)
	}
}

func (s *Service) answerCallback(update *telegram.Update, text string) {
	if err := s.Bot.AnswerCallback(update.CallbackId, text); err != nil {
		s.log(common.LogLevelWarn, "failed to answer callback[%s]: %s", update.CallbackId, err)
	}
}
