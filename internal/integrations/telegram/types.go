package telegram

import (
	"github.com/go-telegram/bot/models"
)

// Update is a wrapper around the third party implementation's update model
type Update struct {
	UpdateId       int64          `json:"updateId"`
	CallbackData   string         `json:"callbackData"`
	CallbackId     string         `json:"callbackId"`
	ChatId         int64          `json:"chatId"`
	ChatTitle      string         `json:"chatTitle"`
	ChatType       string         `json:"chatType"`
	IsReply        bool           `json:"isReply"`
	Message        string         `json:"message"`
	MessageId      int            `json:"messageId"`
	Raw            *models.Update `json:"-"`
	ReplyMessageId int            `json:"replyMessageId"`
	SenderId       int64          `json:"senderId"`
	SenderName     string         `json:"senderName"`
	SenderUsername string         `json:"senderUsername"`
}

// IsCallback indicates whether this update originated from a button press
func (u *Update) IsCallback() bool {
	return u.CallbackId != ""
}

// IsGroupChat indicates whether this update originated from a group or
// supergroup chat
func (u *Update) IsGroupChat() bool {
	return u.ChatType == string(models.ChatTypeGroup) || u.ChatType == string(models.ChatTypeSupergroup)
}

// WrapUpdate flattens the library's update model into the fields the
// dispatcher routes on; it never returns nil
func WrapUpdate(raw *models.Update) *Update {
	update := &Update{
		UpdateId: raw.ID,
		Raw:      raw,
	}
	if raw.Message != nil {
		update.ChatId = raw.Message.Chat.ID
		update.ChatTitle = raw.Message.Chat.Title
		update.ChatType = string(raw.Message.Chat.Type)
		update.Message = raw.Message.Text
		update.MessageId = raw.Message.ID
		if raw.Message.From != nil {
			update.SenderId = raw.Message.From.ID
			update.SenderName = raw.Message.From.FirstName
			update.SenderUsername = raw.Message.From.Username
		}
		if raw.Message.ReplyToMessage != nil {
			update.IsReply = true
			update.ReplyMessageId = raw.Message.ReplyToMessage.ID
		}
	}
	if raw.CallbackQuery != nil {
		update.CallbackData = raw.CallbackQuery.Data
		update.CallbackId = raw.CallbackQuery.ID
		update.SenderId = raw.CallbackQuery.From.ID
		update.SenderName = raw.CallbackQuery.From.FirstName
		update.SenderUsername = raw.CallbackQuery.From.Username
		if raw.CallbackQuery.Message.Message != nil {
			update.ChatId = raw.CallbackQuery.Message.Message.Chat.ID
			update.ChatTitle = raw.CallbackQuery.Message.Message.Chat.Title
			update.ChatType = string(raw.CallbackQuery.Message.Message.Chat.Type)
			update.MessageId = raw.CallbackQuery.Message.Message.ID
		}
	}
	return update
}
