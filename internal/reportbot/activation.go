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
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// maximumCodeLength caps the keypad buffer so a held-down key cannot
// grow the display without bound
const maximumCodeLength = 16

// startGroupActivation opens the numeric keypad in a group chat; the
// group becomes an active admin group once the correct code is entered
func (s *Service) startGroupActivation(update *telegram.Update) {
	if group, err := s.Storage.GetAdminGroup(update.ChatId); err == nil && group.IsActive {
		s.send(update.ChatId, "This group is already an active admin group")
		return
	}
	messageId, err := s.Bot.SendMessage(
		update.ChatId,
		"🔐 Enter the group activation code using the keypad below",
		createNumericKeypad(""),
	)
	if err != nil {
		s.log(common.LogLevelWarn, "failed to open activation keypad in group[%v]: %s", update.ChatId, err)
		return
	}
	s.States.Put(update.ChatId, conversation.GroupActivationState{
		KeyboardMessageId: messageId,
		StartedBy:         update.SenderId,
	})
}

// startAdminActivation opens the numeric keypad in a private chat; the
// user gains the admin role once the correct code is entered
func (s *Service) startAdminActivation(update *telegram.Update, user *models.User) {
	if user.IsActiveAdmin() {
		s.send(update.ChatId, "Your admin panel is already unlocked", s.menuFor(user))
		return
	}
	messageId, err := s.Bot.SendMessage(
		update.ChatId,
		"🔐 Enter the admin activation code using the keypad below",
		createNumericKeypad(""),
	)
	if err != nil {
		s.log(common.LogLevelWarn, "failed to open activation keypad in chat[%v]: %s", update.ChatId, err)
		return
	}
	s.States.Put(update.ChatId, conversation.AdminActivationState{
		KeyboardMessageId: messageId,
	})
}

// handleKeypadKey mutates the activation code buffer for the chat; the
// keypad message's display row is edited in place after every change
func (s *Service) handleKeypadKey(update *telegram.Update, key string) {
	state, hasState := s.States.Get(update.ChatId)
	if !hasState {
		s.answerCallback(update, "This keypad is no longer active")
		return
	}

	var buffer string
	var keyboardMessageId int
	switch activeState := state.(type) {
	case conversation.GroupActivationState:
		buffer = activeState.CodeBuffer
		keyboardMessageId = activeState.KeyboardMessageId
	case conversation.AdminActivationState:
		buffer = activeState.CodeBuffer
		keyboardMessageId = activeState.KeyboardMessageId
	default:
		s.answerCallback(update, "No code entry is in progress")
		return
	}

	switch key {
	case keypadKeyNoop:
		s.answerCallback(update, "")
		return
	case keypadKeyCancel:
		s.States.Del(update.ChatId)
		if err := s.Bot.UpdateMessage(update.ChatId, keyboardMessageId, "🚫 Code entry cancelled"); err != nil {
			s.log(common.LogLevelWarn, "failed to close keypad in chat[%v]: %s", update.ChatId, err)
		}
		s.answerCallback(update, "Cancelled")
		return
	case keypadKeyDelete:
		if buffer != "" {
			buffer = buffer[:len(buffer)-1]
		}
	case keypadKeyConfirm:
		s.confirmActivationCode(update, state, buffer, keyboardMessageId)
		return
	default:
		if len(key) != 1 || !strings.Contains("0123456789*#", key) {
			s.answerCallback(update, "Unknown key")
			return
		}
		if len(buffer) >= maximumCodeLength {
			s.answerCallback(update, "The code cannot be any longer")
			return
		}
		buffer += key
	}

	s.putActivationBuffer(update.ChatId, state, buffer)
	if err := s.Bot.UpdateMarkup(update.ChatId, keyboardMessageId, createNumericKeypad(buffer)); err != nil {
		s.log(common.LogLevelWarn, "failed to refresh keypad display in chat[%v]: %s", update.ChatId, err)
	}
	s.answerCallback(update, "")
}

// confirmActivationCode compares the entered code against the bcrypt
// hash held in settings and completes the matching activation flow
func (s *Service) confirmActivationCode(update *telegram.Update, state conversation.State, buffer string, keyboardMessageId int) {
	if buffer == "" {
		s.answerCallback(update, "Enter a code first")
		return
	}

	settingName := SettingNameFor(state)
	expectedHash, err := s.Storage.GetSetting(settingName)
	if err != nil {
		s.log(common.LogLevelError, "failed to fetch setting[%s]: %s", settingName, err)
		s.answerCallback(update, "Activation is not configured yet, please contact an administrator")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(expectedHash), []byte(buffer)); err != nil {
		// wrong code resets the buffer but keeps the flow alive
		s.putActivationBuffer(update.ChatId, state, "")
		if err := s.Bot.UpdateMarkup(update.ChatId, keyboardMessageId, createNumericKeypad("")); err != nil {
			s.log(common.LogLevelWarn, "failed to refresh keypad display in chat[%v]: %s", update.ChatId, err)
		}
		s.answerCallback(update, "Wrong code, try again")
		return
	}

	switch activeState := state.(type) {
	case conversation.GroupActivationState:
		if err := s.Storage.ActivateAdminGroup(update.ChatId, update.ChatTitle, activeState.StartedBy); err != nil {
			s.log(common.LogLevelError, "failed to activate group[%v]: %s", update.ChatId, err)
			s.answerCallback(update, "Something went wrong internally, please try again")
			return
		}
		s.States.Del(update.ChatId)
		s.auditActivation(activeState.StartedBy, audit.AdminGroupResource, fmt.Sprintf("%v", update.ChatId))
		if err := s.Bot.UpdateMessage(update.ChatId, keyboardMessageId, "✅ This group is now an active admin group and will receive pending reports"); err != nil {
			s.log(common.LogLevelWarn, "failed to close keypad in group[%v]: %s", update.ChatId, err)
		}
	case conversation.AdminActivationState:
		if err := s.Storage.SetUserRole(update.SenderId, reports.RoleAdmin); err != nil {
			s.log(common.LogLevelError, "failed to promote user[%v]: %s", update.SenderId, err)
			s.answerCallback(update, "Something went wrong internally, please try again")
			return
		}
		s.States.Del(update.ChatId)
		s.auditActivation(update.SenderId, audit.AdminPanelResource, fmt.Sprintf("%v", update.SenderId))
		if err := s.Bot.UpdateMessage(update.ChatId, keyboardMessageId, "✅ Admin panel unlocked"); err != nil {
			s.log(common.LogLevelWarn, "failed to close keypad in chat[%v]: %s", update.ChatId, err)
		}
		s.send(update.ChatId, "You now have access to pending orders and statistics", createAdminMenu())
	}
	s.answerCallback(update, "Activated")
}

func (s *Service) putActivationBuffer(chatId int64, state conversation.State, buffer string) {
	switch activeState := state.(type) {
	case conversation.GroupActivationState:
		activeState.CodeBuffer = buffer
		s.States.Put(chatId, activeState)
	case conversation.AdminActivationState:
		activeState.CodeBuffer = buffer
		s.States.Put(chatId, activeState)
	}
}

// SettingNameFor maps an activation state family to the settings entry
// holding its bcrypt-hashed code
func SettingNameFor(state conversation.State) string {
	if state.Kind() == conversation.KindGroupActivation {
		return models.SettingGroupActivationCode
	}
	return models.SettingAdminActivationCode
}

func (s *Service) auditActivation(actorId int64, resourceType audit.ResourceType, resourceId string) {
	if err := audit.Log(audit.LogEntry{
		EntityId:     fmt.Sprintf("%v", actorId),
		EntityType:   audit.UserEntity,
		Verb:         audit.Activate,
		ResourceId:   resourceId,
		ResourceType: resourceType,
		Status:       audit.Success,
	}); err != nil && !errors.Is(err, audit.ErrorNotInitialized) {
		s.log(common.LogLevelWarn, "failed to audit activation: %s", err)
	}
}
