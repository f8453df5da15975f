package reportbot

import (
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
)

func TestNumericKeypadLayout(t *testing.T) {
	keypad, ok := createNumericKeypad("").(*models.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("expected an inline keyboard")
	}
	if len(keypad.InlineKeyboard) != 6 {
		t.Fatalf("expected 6 keypad rows, got %v", len(keypad.InlineKeyboard))
	}
	display := keypad.InlineKeyboard[0]
	if len(display) != 1 || display[0].CallbackData != callbackPrefixKeypad+keypadKeyNoop {
		t.Errorf("expected a single no-op display button, got %+v", display)
	}

	seenDigits := map[string]bool{}
	for _, row := range keypad.InlineKeyboard[1:] {
		for _, button := range row {
			if !strings.HasPrefix(button.CallbackData, callbackPrefixKeypad) {
				t.Errorf("expected keypad-namespaced callback data, got '%s'", button.CallbackData)
			}
			seenDigits[strings.TrimPrefix(button.CallbackData, callbackPrefixKeypad)] = true
		}
	}
	for _, expected := range []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "*", "#", keypadKeyDelete, keypadKeyConfirm, keypadKeyCancel} {
		if !seenDigits[expected] {
			t.Errorf("expected keypad key '%s' to be present", expected)
		}
	}
}

func TestNumericKeypadEchoesPartialInput(t *testing.T) {
	keypad := createNumericKeypad("123").(*models.InlineKeyboardMarkup)
	if keypad.InlineKeyboard[0][0].Text != "123" {
		t.Errorf("expected the display row to echo '123', got '%s'", keypad.InlineKeyboard[0][0].Text)
	}
}

func TestApprovalKeyboardCarriesOrderId(t *testing.T) {
	keyboard := createApprovalKeyboard("order-7").(*models.InlineKeyboardMarkup)
	if len(keyboard.InlineKeyboard) != 1 || len(keyboard.InlineKeyboard[0]) != 3 {
		t.Fatalf("expected a single row of 3 actions, got %+v", keyboard.InlineKeyboard)
	}
	expected := []string{
		callbackPrefixApprove + "order-7",
		callbackPrefixReject + "order-7",
		callbackPrefixModify + "order-7",
	}
	for i, button := range keyboard.InlineKeyboard[0] {
		if button.CallbackData != expected[i] {
			t.Errorf("expected callback data '%s', got '%s'", expected[i], button.CallbackData)
		}
	}
}

func TestRoleMenusHaveTwoRows(t *testing.T) {
	for name, markup := range map[string]any{
		"employee": createEmployeeMenu(),
		"admin":    createAdminMenu(),
	} {
		menu, ok := markup.(*models.ReplyKeyboardMarkup)
		if !ok {
			t.Fatalf("expected the %s menu to be a reply keyboard", name)
		}
		if len(menu.Keyboard) != 2 {
			t.Errorf("expected the %s menu to have 2 rows, got %v", name, len(menu.Keyboard))
		}
	}
}
