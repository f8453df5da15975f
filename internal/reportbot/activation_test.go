package reportbot

import (
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func hashCode(t *testing.T, code string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash code: %s", err)
	}
	return string(hash)
}

func pressKeys(service *Service, chatId int64, chatType string, senderId int64, messageId int, keys ...string) {
	for _, key := range keys {
		service.HandleUpdate(callbackUpdate(chatId, chatType, senderId, messageId, callbackPrefixKeypad+key))
	}
}

func TestGroupActivationFlow(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	storage.settings[models.SettingGroupActivationCode] = hashCode(t, "1234")

	service.HandleUpdate(groupTextUpdate(500, 100, "/activate@ReportDeskBot"))

	keypadMessages := gateway.sentTo(500)
	if len(keypadMessages) != 1 || !keypadMessages[0].HasMarkup {
		t.Fatalf("expected a keypad message in the group, got %+v", keypadMessages)
	}
	if _, hasState := service.States.Get(500); !hasState {
		t.Fatalf("expected a group activation state")
	}

	pressKeys(service, 500, "group", 100, keypadMessages[0].MessageId, "1", "2", "3", "4", keypadKeyConfirm)

	group, err := storage.GetAdminGroup(500)
	if err != nil || !group.IsActive {
		t.Fatalf("expected the group to be activated, got %+v (%v)", group, err)
	}
	if _, hasState := service.States.Get(500); hasState {
		t.Errorf("expected the activation state to be cleared")
	}
	closed := false
	for _, edit := range gateway.Edited {
		if edit.ChatId == 500 && strings.Contains(edit.Text, "active admin group") {
			closed = true
		}
	}
	if !closed {
		t.Errorf("expected the keypad message to be replaced with a success notice")
	}
}

func TestWrongCodeResetsBuffer(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	storage.settings[models.SettingAdminActivationCode] = hashCode(t, "9999")

	service.HandleUpdate(privateTextUpdate(100, CommandAdminPanel))
	keypadMessages := gateway.sentTo(100)
	if len(keypadMessages) == 0 {
		t.Fatalf("expected a keypad message")
	}

	pressKeys(service, 100, "private", 100, keypadMessages[0].MessageId, "1", "1", keypadKeyConfirm)

	if !strings.Contains(gateway.lastAnswer(), "Wrong code") {
		t.Errorf("expected a wrong-code answer, got '%s'", gateway.lastAnswer())
	}
	if user, _ := storage.GetUser(100); user.IsActiveAdmin() {
		t.Errorf("expected the user to remain a non-admin")
	}
	if _, hasState := service.States.Get(100); !hasState {
		t.Errorf("expected the flow to stay alive after a wrong code")
	}
}

func TestAdminActivationPromotesUser(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	storage.settings[models.SettingAdminActivationCode] = hashCode(t, "42")

	service.HandleUpdate(privateTextUpdate(100, CommandAdminPanel))
	keypadMessages := gateway.sentTo(100)
	if len(keypadMessages) == 0 {
		t.Fatalf("expected a keypad message")
	}
	pressKeys(service, 100, "private", 100, keypadMessages[0].MessageId, "4", "2", keypadKeyConfirm)

	user, _ := storage.GetUser(100)
	if !user.IsActiveAdmin() {
		t.Fatalf("expected the user to be promoted to admin")
	}
}

func TestKeypadCancelClosesFlow(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	storage.settings[models.SettingAdminActivationCode] = hashCode(t, "42")

	service.HandleUpdate(privateTextUpdate(100, CommandAdminPanel))
	keypadMessages := gateway.sentTo(100)
	pressKeys(service, 100, "private", 100, keypadMessages[0].MessageId, "4", keypadKeyCancel)

	if _, hasState := service.States.Get(100); hasState {
		t.Errorf("expected cancel to clear the activation state")
	}
}
