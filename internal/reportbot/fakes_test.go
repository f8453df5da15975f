package reportbot

import (
	"fmt"
	"reportdesk/internal/cache"
	"reportdesk/internal/common"
	"reportdesk/internal/conversation"
	"reportdesk/internal/integrations/telegram"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tgmodels "github.com/go-telegram/bot/models"
)

type tgReplyMarkup = tgmodels.ReplyMarkup

// fakeStorage is an in-memory Storage double; ResolveOrder applies the
// same pending-status guard as the MySQL implementation so race tests
// exercise the real contract
type fakeStorage struct {
	lock          sync.Mutex
	orders        map[string]*models.Order
	users         map[int64]*models.User
	groups        map[int64]*models.AdminGroup
	templates     map[reports.OrderType]*models.ReportTemplate
	settings      map[string]string
	orderSequence int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		orders:    map[string]*models.Order{},
		users:     map[int64]*models.User{},
		groups:    map[int64]*models.AdminGroup{},
		templates: map[reports.OrderType]*models.ReportTemplate{},
		settings:  map[string]string{},
	}
}

func (f *fakeStorage) addUser(id int64, name string, role reports.UserRole, isDisabled bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.users[id] = &models.User{
		Id:          id,
		DisplayName: &name,
		Role:        role,
		IsDisabled:  isDisabled,
		CreatedAt:   time.Now(),
	}
}

func (f *fakeStorage) addActiveGroup(chatId int64) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.groups[chatId] = &models.AdminGroup{ChatId: chatId, IsActive: true, CreatedAt: time.Now()}
}

func (f *fakeStorage) addTemplate(orderType reports.OrderType, content string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.templates[orderType] = &models.ReportTemplate{
		Id:        fmt.Sprintf("template-%s", orderType),
		Name:      string(orderType),
		Type:      orderType,
		Content:   content,
		IsDefault: true,
		CreatedAt: time.Now(),
	}
}

func copyOrder(order *models.Order) *models.Order {
	copied := *order
	copied.GroupMessageIds = map[int64]int{}
	for chatId, messageId := range order.GroupMessageIds {
		copied.GroupMessageIds[chatId] = messageId
	}
	return &copied
}

func (f *fakeStorage) CreateOrder(orderType reports.OrderType, employeeId int64, content string, fields reports.ExtractedFields) (*models.Order, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.orderSequence++
	order := &models.Order{
		Id:               fmt.Sprintf("order-%v", f.orderSequence),
		OrderNumber:      models.GenerateOrderNumber(orderType, time.Now()),
		Type:             orderType,
		Status:           reports.StatusPending,
		EmployeeId:       employeeId,
		Amount:           fields.AmountExtracted,
		Content:          content,
		ExtractionStatus: fields.Status,
		GroupMessageIds:  map[int64]int{},
		CreatedAt:        time.Now(),
	}
	if fields.CustomerName != "" {
		order.CustomerName = &fields.CustomerName
	}
	if fields.ProjectName != "" {
		order.ProjectName = &fields.ProjectName
	}
	if fields.AmountExtracted != "" {
		order.AmountExtracted = &fields.AmountExtracted
	}
	f.orders[order.Id] = order
	return copyOrder(order), nil
}

func (f *fakeStorage) GetOrder(id string) (*models.Order, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, models.ErrorNotFound
	}
	return copyOrder(order), nil
}

func (f *fakeStorage) ListOrders(status *reports.OrderStatus, limit int) ([]models.Order, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	orders := []models.Order{}
	for _, order := range f.orders {
		if status != nil && order.Status != *status {
			continue
		}
		orders = append(orders, *copyOrder(order))
	}
	return orders, nil
}

func (f *fakeStorage) ResolveOrder(opts ResolveOrderOpts) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	order, ok := f.orders[opts.Id]
	if !ok {
		return models.ErrorNotFound
	}
	if order.Status != reports.StatusPending {
		return fmt.Errorf("order[%s] is not pending: %w", opts.Id, models.ErrorAlreadyProcessed)
	}
	now := time.Now()
	surface := string(opts.Surface)
	order.Status = opts.Status
	order.ApproverId = &opts.ApproverId
	order.ApproverName = &opts.ApproverName
	order.ApprovedAt = &now
	order.ApprovalSurface = &surface
	order.RejectionReason = opts.RejectionReason
	if opts.ModifiedContent != nil {
		order.ModifiedContent = opts.ModifiedContent
		order.ModifiedAt = &now
	}
	return nil
}

func (f *fakeStorage) SetOrderGroupMessages(id string, groupMessageIds map[int64]int) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return models.ErrorNotFound
	}
	order.GroupMessageIds = map[int64]int{}
	for chatId, messageId := range groupMessageIds {
		order.GroupMessageIds[chatId] = messageId
	}
	return nil
}

func (f *fakeStorage) GetUser(id int64) (*models.User, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, models.ErrorNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStorage) UpsertUser(id int64, username string, displayName string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if existing, ok := f.users[id]; ok {
		// empty profile fields never erase known values
		if username != "" {
			existing.Username = &username
		}
		if displayName != "" {
			existing.DisplayName = &displayName
		}
		return nil
	}
	f.users[id] = &models.User{
		Id:          id,
		Username:    &username,
		DisplayName: &displayName,
		Role:        reports.RoleEmployee,
		CreatedAt:   time.Now(),
	}
	return nil
}

func (f *fakeStorage) SetUserRole(id int64, role reports.UserRole) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	user, ok := f.users[id]
	if !ok {
		return models.ErrorNotFound
	}
	user.Role = role
	return nil
}

func (f *fakeStorage) GetAdminGroup(chatId int64) (*models.AdminGroup, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	group, ok := f.groups[chatId]
	if !ok {
		return nil, models.ErrorNotFound
	}
	copied := *group
	return &copied, nil
}

func (f *fakeStorage) ListActiveAdminGroups() ([]models.AdminGroup, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	groups := []models.AdminGroup{}
	for _, group := range f.groups {
		if group.IsActive {
			groups = append(groups, *group)
		}
	}
	return groups, nil
}

func (f *fakeStorage) ActivateAdminGroup(chatId int64, title string, activatedBy int64) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	now := time.Now()
	f.groups[chatId] = &models.AdminGroup{
		ChatId:      chatId,
		Title:       &title,
		IsActive:    true,
		ActivatedBy: &activatedBy,
		ActivatedAt: &now,
		CreatedAt:   now,
	}
	return nil
}

func (f *fakeStorage) GetDefaultTemplate(orderType reports.OrderType) (*models.ReportTemplate, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	template, ok := f.templates[orderType]
	if !ok {
		return nil, models.ErrorNotFound
	}
	copied := *template
	return &copied, nil
}

func (f *fakeStorage) GetSetting(name string) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	value, ok := f.settings[name]
	if !ok {
		return "", models.ErrorNotFound
	}
	return value, nil
}

func (f *fakeStorage) GetOrderStats() (*models.OrderStats, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	stats := &models.OrderStats{
		DepositTotal:    "0",
		WithdrawalTotal: "0",
		RefundTotal:     "0",
	}
	for _, order := range f.orders {
		stats.TotalOrders++
		switch order.Status {
		case reports.StatusPending:
			stats.PendingOrders++
		case reports.StatusApproved, reports.StatusApprovedModified:
			stats.ApprovedOrders++
		case reports.StatusRejected:
			stats.RejectedOrders++
		}
	}
	return stats, nil
}

type fakeMessage struct {
	ChatId    int64
	MessageId int
	Text      string
	HasMarkup bool

	// ReplyTo is non-zero when the message was sent as a reply
	ReplyTo int
}

// fakeGateway records outbound traffic and can be told to fail edits or
// sends to specific chats
type fakeGateway struct {
	lock          sync.Mutex
	nextMessageId int

	Sent    []fakeMessage
	Edited  []fakeMessage
	Answers []string

	FailEdits   bool
	FailSendsTo map[int64]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{FailSendsTo: map[int64]bool{}}
}

func (g *fakeGateway) SendMessage(chatId int64, message string, markup ...tgReplyMarkup) (int, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.FailSendsTo[chatId] {
		return 0, fmt.Errorf("send to chat[%v] failed", chatId)
	}
	g.nextMessageId++
	g.Sent = append(g.Sent, fakeMessage{
		ChatId:    chatId,
		MessageId: g.nextMessageId,
		Text:      message,
		HasMarkup: len(markup) > 0 && markup[0] != nil,
	})
	return g.nextMessageId, nil
}

func (g *fakeGateway) ReplyMessage(chatId int64, replyMessageId int, message string, markup ...tgReplyMarkup) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.FailSendsTo[chatId] {
		return fmt.Errorf("send to chat[%v] failed", chatId)
	}
	g.nextMessageId++
	g.Sent = append(g.Sent, fakeMessage{
		ChatId:    chatId,
		MessageId: g.nextMessageId,
		Text:      message,
		HasMarkup: len(markup) > 0 && markup[0] != nil,
		ReplyTo:   replyMessageId,
	})
	return nil
}

func (g *fakeGateway) UpdateMessage(chatId int64, messageId int, newMessage string, markup ...tgReplyMarkup) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.FailEdits {
		return fmt.Errorf("edit of message[%v] in chat[%v] failed", messageId, chatId)
	}
	g.Edited = append(g.Edited, fakeMessage{
		ChatId:    chatId,
		MessageId: messageId,
		Text:      newMessage,
		HasMarkup: len(markup) > 0 && markup[0] != nil,
	})
	return nil
}

func (g *fakeGateway) UpdateMarkup(chatId int64, messageId int, markup tgReplyMarkup) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.FailEdits {
		return fmt.Errorf("markup edit of message[%v] in chat[%v] failed", messageId, chatId)
	}
	g.Edited = append(g.Edited, fakeMessage{
		ChatId:    chatId,
		MessageId: messageId,
		HasMarkup: true,
	})
	return nil
}

func (g *fakeGateway) DeleteMessage(chatId int64, messageId int) error {
	return nil
}

func (g *fakeGateway) AnswerCallback(callbackId string, text string) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.Answers = append(g.Answers, text)
	return nil
}

func (g *fakeGateway) sentTo(chatId int64) []fakeMessage {
	g.lock.Lock()
	defer g.lock.Unlock()
	messages := []fakeMessage{}
	for _, message := range g.Sent {
		if message.ChatId == chatId {
			messages = append(messages, message)
		}
	}
	return messages
}

func (g *fakeGateway) lastAnswer() string {
	g.lock.Lock()
	defer g.lock.Unlock()
	if len(g.Answers) == 0 {
		return ""
	}
	return g.Answers[len(g.Answers)-1]
}

func newTestService(t *testing.T) (*Service, *fakeStorage, *fakeGateway) {
	t.Helper()
	storage := newFakeStorage()
	gateway := newFakeGateway()
	service, err := NewService(NewServiceOpts{
		Storage:     storage,
		Cache:       cache.NewMemory(),
		Bot:         gateway,
		States:      conversation.NewStore(),
		ServiceLogs: common.GetNoopServiceLog(),
	})
	if err != nil {
		t.Fatalf("failed to create service: %s", err)
	}
	return service, storage, gateway
}

var updateSequence int64

func nextUpdateId() int64 {
	return atomic.AddInt64(&updateSequence, 1)
}

func privateTextUpdate(userId int64, text string) *telegram.Update {
	return &telegram.Update{
		UpdateId:   nextUpdateId(),
		ChatId:     userId,
		ChatType:   "private",
		Message:    text,
		MessageId:  int(nextUpdateId()),
		SenderId:   userId,
		SenderName: fmt.Sprintf("user-%v", userId),
	}
}

func groupTextUpdate(chatId int64, senderId int64, text string) *telegram.Update {
	return &telegram.Update{
		UpdateId:   nextUpdateId(),
		ChatId:     chatId,
		ChatType:   "group",
		ChatTitle:  fmt.Sprintf("group-%v", chatId),
		Message:    text,
		MessageId:  int(nextUpdateId()),
		SenderId:   senderId,
		SenderName: fmt.Sprintf("user-%v", senderId),
	}
}

func callbackUpdate(chatId int64, chatType string, senderId int64, messageId int, data string) *telegram.Update {
	return &telegram.Update{
		UpdateId:     nextUpdateId(),
		CallbackData: data,
		CallbackId:   fmt.Sprintf("callback-%v", nextUpdateId()),
		ChatId:       chatId,
		ChatType:     chatType,
		MessageId:    messageId,
		SenderId:     senderId,
		SenderName:   fmt.Sprintf("user-%v", senderId),
	}
}
