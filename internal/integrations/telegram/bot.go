package telegram

import (
	"context"
	"fmt"
	"reportdesk/internal/common"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Bot wraps the third-party library we use for interacting with Telegram.
// Every method returns an error rather than panicking so that callers can
// apply their own fallback (eg. "edit failed, send a fresh message")
type Bot struct {
	// Client is an instance of the third-party library we use for
	// interacting with Telegram
	Client *bot.Bot

	// Done is a channel that upon receiving a message, terminates
	// the bot gracefully
	Done chan common.Done

	// ServiceLogs is the channel to send logs to for logging via
	// the centralised logger
	ServiceLogs chan<- common.ServiceLog
}

type NewOpts struct {
	Token       string
	Done        chan common.Done
	ServiceLogs chan<- common.ServiceLog
}

func New(opts NewOpts) (*Bot, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("failed to receive a bot token")
	}
	client, err := bot.New(opts.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}
	return &Bot{
		Client:      client,
		Done:        opts.Done,
		ServiceLogs: opts.ServiceLogs,
	}, nil
}

// SendMessage sends `message` to `chatId` and returns the id of the sent
// message so callers can track it for later edits
func (b *Bot) SendMessage(chatId int64, message string, markup ...models.ReplyMarkup) (int, error) {
	b.ServiceLogs <- common.ServiceLogf(
		common.LogLevelDebug,
		"chat[%v] >> '%s'", chatId, message,
	)
	messageParameters := &bot.SendMessageParams{
		ChatID: chatId,
		Text:   message,
	}
	if len(markup) > 0 && markup[0] != nil {
		messageParameters.ReplyMarkup = markup[0]
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sent, err := b.Client.SendMessage(ctx, messageParameters)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %s", err)
	}
	return sent.ID, nil
}

func (b *Bot) ReplyMessage(chatId int64, replyMessageId int, message string, markup ...models.ReplyMarkup) error {
	b.ServiceLogs <- common.ServiceLogf(
		common.LogLevelDebug,
		"chat[%v] >> '%s'", chatId, message,
	)
	messageParameters := &bot.SendMessageParams{
		ChatID: chatId,
		Text:   message,
		ReplyParameters: &models.ReplyParameters{
			ChatID:    chatId,
			MessageID: replyMessageId,
		},
	}
	if len(markup) > 0 && markup[0] != nil {
		messageParameters.ReplyMarkup = markup[0]
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := b.Client.SendMessage(ctx, messageParameters); err != nil {
		return fmt.Errorf("failed to send message: %s", err)
	}
	return nil
}

func (b *Bot) UpdateMessage(chatId int64, messageId int, newMessage string, markup ...models.ReplyMarkup) error {
	b.ServiceLogs <- common.ServiceLogf(
		common.LogLevelDebug,
		"chat[%v].UpdateMessage[%v] '%s' (markup: %v)",
		chatId,
		messageId,
		newMessage,
		len(markup) > 0,
	)
	editMessageParameters := &bot.EditMessageTextParams{
		ChatID:    chatId,
		MessageID: messageId,
		Text:      newMessage,
	}
	if len(markup) > 0 && markup[0] != nil {
		editMessageParameters.ReplyMarkup = markup[0]
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := b.Client.EditMessageText(ctx, editMessageParameters); err != nil {
		return fmt.Errorf("failed to edit text of message[%v] in chat[%v]: %s", messageId, chatId, err)
	}
	return nil
}

func (b *Bot) UpdateMarkup(chatId int64, messageId int, markup models.ReplyMarkup) error {
	b.ServiceLogs <- common.ServiceLogf(
		common.LogLevelDebug,
		"chat[%v].UpdateMarkup[%v]",
		chatId,
		messageId,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := b.Client.EditMessageReplyMarkup(
		ctx, &bot.EditMessageReplyMarkupParams{
			ChatID:      chatId,
			MessageID:   messageId,
			ReplyMarkup: markup,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to edit reply markup of message[%v] in chat[%v]: %s", messageId, chatId, err)
	}
	return nil
}

func (b *Bot) DeleteMessage(chatId int64, messageId int) error {
	b.ServiceLogs <- common.ServiceLogf(
		common.LogLevelDebug,
		"chat[%v].DeleteMessage[%v]",
		chatId,
		messageId,
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := b.Client.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatId,
		MessageID: messageId,
	}); err != nil {
		return fmt.Errorf("failed to delete message[%v] in chat[%v]: %s", messageId, chatId, err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query so the client's loading
// indicator stops; `text` when non-empty is shown as a toast
func (b *Bot) AnswerCallback(callbackId string, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := b.Client.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackId,
		Text:            text,
	}); err != nil {
		return fmt.Errorf("failed to answer callback[%s]: %s", callbackId, err)
	}
	return nil
}

func (b *Bot) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := b.Client.Close(ctx); err != nil {
		b.ServiceLogs <- common.ServiceLogf(common.LogLevelError, "failed to close bot: %s", err)
	}
}
