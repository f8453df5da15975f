package reportbot

import (
	"fmt"
	"reportdesk/internal/common"
	"reportdesk/internal/conversation"

	"github.com/go-telegram/bot/models"
)

// Gateway is the outbound messaging contract; *telegram.Bot satisfies
// it. Transport failures come back as errors the caller inspects for
// fallback logic, they never propagate as panics
type Gateway interface {
	SendMessage(chatId int64, message string, markup ...models.ReplyMarkup) (int, error)
	ReplyMessage(chatId int64, replyMessageId int, message string, markup ...models.ReplyMarkup) error
	UpdateMessage(chatId int64, messageId int, newMessage string, markup ...models.ReplyMarkup) error
	UpdateMarkup(chatId int64, messageId int, markup models.ReplyMarkup) error
	DeleteMessage(chatId int64, messageId int) error
	AnswerCallback(callbackId string, text string) error
}

// Service is the bot's explicitly constructed dependency container;
// there is no ambient global instance, the webhook handler receives it
// via injection
type Service struct {
	// Storage is the persistence collaborator owning orders, users,
	// groups, templates and settings
	Storage Storage

	// Cache backs the webhook deduplication window
	Cache common.Cache

	// Bot is the outbound messaging gateway
	Bot Gateway

	// States holds the per-chat conversation state machines
	States conversation.Store

	// ServiceLogs is the channel to send logs to for logging via the
	// centralised logger
	ServiceLogs chan<- common.ServiceLog
}

type NewServiceOpts struct {
	Storage     Storage
	Cache       common.Cache
	Bot         Gateway
	States      conversation.Store
	ServiceLogs chan<- common.ServiceLog
}

func NewService(opts NewServiceOpts) (*Service, error) {
	if opts.Storage == nil {
		return nil, fmt.Errorf("failed to receive a storage implementation")
	}
	if opts.Cache == nil {
		return nil, fmt.Errorf("failed to receive a cache implementation")
	}
	if opts.Bot == nil {
		return nil, fmt.Errorf("failed to receive a messaging gateway")
	}
	states := opts.States
	if states == nil {
		states = conversation.NewStore()
	}
	serviceLogs := opts.ServiceLogs
	if serviceLogs == nil {
		serviceLogs = common.GetNoopServiceLog()
	}
	return &Service{
		Storage:     opts.Storage,
		Cache:       opts.Cache,
		Bot:         opts.Bot,
		States:      states,
		ServiceLogs: serviceLogs,
	}, nil
}

func (s *Service) log(level common.LogLevel, format string, args ...any) {
	s.ServiceLogs <- common.ServiceLogf(level, format, args...)
}
