package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestWrapUpdateMessage(t *testing.T) {
	raw := &models.Update{
		ID: 42,
		Message: &models.Message{
			ID:   7,
			Text: "hello",
			Chat: models.Chat{ID: -100123, Type: models.ChatTypeSupergroup, Title: "finance"},
			From: &models.User{ID: 555, Username: "zhang", FirstName: "Zhang"},
		},
	}
	update := WrapUpdate(raw)
	if update.UpdateId != 42 {
		t.Errorf("expected update id 42, got %v", update.UpdateId)
	}
	if update.ChatId != -100123 || !update.IsGroupChat() {
		t.Errorf("expected a group chat update, got chat[%v] type[%s]", update.ChatId, update.ChatType)
	}
	if update.SenderId != 555 || update.Message != "hello" || update.MessageId != 7 {
		t.Errorf("unexpected flattened fields: %+v", update)
	}
	if update.IsCallback() {
		t.Errorf("expected a non-callback update")
	}
}

func TestWrapUpdateCallback(t *testing.T) {
	raw := &models.Update{
		ID: 43,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb-1",
			Data: "approve:abc",
			From: models.User{ID: 777, Username: "admin", FirstName: "Admin"},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   9,
					Chat: models.Chat{ID: 999, Type: models.ChatTypePrivate},
				},
			},
		},
	}
	update := WrapUpdate(raw)
	if !update.IsCallback() {
		t.Fatalf("expected a callback update")
	}
	if update.CallbackData != "approve:abc" || update.MessageId != 9 || update.ChatId != 999 {
		t.Errorf("unexpected flattened fields: %+v", update)
	}
}
