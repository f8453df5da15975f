package reportbot

import (
	"github.com/go-telegram/bot/models"
)

// createApprovalKeyboard builds the inline action row attached to a
// pending-order notification
func createApprovalKeyboard(orderId string) models.ReplyMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{
				Text:         "✅ Approve",
				CallbackData: callbackPrefixApprove + orderId,
			},
			{
				Text:         "❌ Reject",
				CallbackData: callbackPrefixReject + orderId,
			},
			{
				Text:         "✏️ Modify",
				CallbackData: callbackPrefixModify + orderId,
			},
		}},
	}
}

// createNumericKeypad builds the activation code entry keypad. The top
// row is a single disabled display button echoing the current partial
// input so the keypad message can be edited in place as keys are pressed
func createNumericKeypad(display string) models.ReplyMarkup {
	if display == "" {
		display = "· · ·"
	}
	key := func(text, token string) models.InlineKeyboardButton {
		return models.InlineKeyboardButton{
			Text:         text,
			CallbackData: callbackPrefixKeypad + token,
		}
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{key(display, keypadKeyNoop)},
			{key("1", "1"), key("2", "2"), key("3", "3")},
			{key("4", "4"), key("5", "5"), key("6", "6")},
			{key("7", "7"), key("8", "8"), key("9", "9")},
			{key("*", "*"), key("0", "0"), key("#", "#")},
			{key("⌫", keypadKeyDelete), key("OK", keypadKeyConfirm), key("✖", keypadKeyCancel)},
		},
	}
}

// createEmployeeMenu is the persistent reply menu shown to employees
func createEmployeeMenu() models.ReplyMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{
				{Text: MenuSubmitDeposit},
				{Text: MenuSubmitWithdrawal},
			},
			{
				{Text: MenuSubmitRefund},
				{Text: MenuCancel},
			},
		},
		ResizeKeyboard: true,
		IsPersistent:   true,
	}
}

// createAdminMenu is the persistent reply menu shown to active admins
func createAdminMenu() models.ReplyMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{
				{Text: MenuPendingOrders},
				{Text: MenuOrderStats},
			},
			{
				{Text: MenuSubmitDeposit},
				{Text: MenuCancel},
			},
		},
		ResizeKeyboard: true,
		IsPersistent:   true,
	}
}

// menuButtonLabels are the labels the dispatcher treats as flow
// interrupts when pressed mid-flow
var menuButtonLabels = []string{
	MenuSubmitDeposit,
	MenuSubmitWithdrawal,
	MenuSubmitRefund,
	MenuPendingOrders,
	MenuOrderStats,
}

func isMenuButton(text string) bool {
	for _, label := range menuButtonLabels {
		if text == label {
			return true
		}
	}
	return false
}
