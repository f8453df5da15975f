package reportbot

import (
	"database/sql"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
)

type ResolveOrderOpts struct {
	// Id is the order's UUID
	Id string

	// Status is the terminal status to transition to
	Status reports.OrderStatus

	ApproverId   int64
	ApproverName string

	// Surface is the channel the resolving action came from
	Surface reports.ApprovalSurface

	RejectionReason *string
	ModifiedContent *string
}

// Storage is the persistence contract the bot operates against. The
// shipped implementation is MySQL-backed; the interface exists so the
// orchestrator and dispatcher can be exercised against an in-memory
// double without a database
type Storage interface {
	CreateOrder(orderType reports.OrderType, employeeId int64, content string, fields reports.ExtractedFields) (*models.Order, error)
	GetOrder(id string) (*models.Order, error)
	ListOrders(status *reports.OrderStatus, limit int) ([]models.Order, error)

	// ResolveOrder transitions a pending order into a terminal status;
	// returns models.ErrorAlreadyProcessed when the order is no longer
	// pending, making the status guard the race control
	ResolveOrder(opts ResolveOrderOpts) error

	SetOrderGroupMessages(id string, groupMessageIds map[int64]int) error

	GetUser(id int64) (*models.User, error)
	UpsertUser(id int64, username string, displayName string) error
	SetUserRole(id int64, role reports.UserRole) error

	GetAdminGroup(chatId int64) (*models.AdminGroup, error)
	ListActiveAdminGroups() ([]models.AdminGroup, error)
	ActivateAdminGroup(chatId int64, title string, activatedBy int64) error

	GetDefaultTemplate(orderType reports.OrderType) (*models.ReportTemplate, error)
	GetSetting(name string) (string, error)
	GetOrderStats() (*models.OrderStats, error)
}

// mysqlStorage adapts the models package to the Storage contract
type mysqlStorage struct {
	db *sql.DB
}

func NewMysqlStorage(db *sql.DB) Storage {
	return &mysqlStorage{db: db}
}

func (s *mysqlStorage) CreateOrder(orderType reports.OrderType, employeeId int64, content string, fields reports.ExtractedFields) (*models.Order, error) {
	return models.CreateOrderV1(models.CreateOrderV1Opts{
		Db:         s.db,
		Type:       orderType,
		EmployeeId: employeeId,
		Content:    content,
		Fields:     fields,
	})
}

func (s *mysqlStorage) GetOrder(id string) (*models.Order, error) {
	return models.GetOrderV1(models.GetOrderV1Opts{Db: s.db, Id: id})
}

func (s *mysqlStorage) ListOrders(status *reports.OrderStatus, limit int) ([]models.Order, error) {
	return models.ListOrdersV1(models.ListOrdersV1Opts{
		Db:     s.db,
		Status: status,
		Limit:  limit,
	})
}

func (s *mysqlStorage) ResolveOrder(opts ResolveOrderOpts) error {
	return models.ResolveOrderV1(models.ResolveOrderV1Opts{
		Db:              s.db,
		Id:              opts.Id,
		Status:          opts.Status,
		ApproverId:      opts.ApproverId,
		ApproverName:    opts.ApproverName,
		Surface:         opts.Surface,
		RejectionReason: opts.RejectionReason,
		ModifiedContent: opts.ModifiedContent,
	})
}

func (s *mysqlStorage) SetOrderGroupMessages(id string, groupMessageIds map[int64]int) error {
	return models.SetOrderGroupMessagesV1(models.SetOrderGroupMessagesV1Opts{
		Db:              s.db,
		Id:              id,
		GroupMessageIds: groupMessageIds,
	})
}

func (s *mysqlStorage) GetUser(id int64) (*models.User, error) {
	return models.GetUserV1(models.GetUserV1Opts{Db: s.db, Id: id})
}

func (s *mysqlStorage) UpsertUser(id int64, username string, displayName string) error {
	return models.UpsertUserV1(models.UpsertUserV1Opts{
		Db:          s.db,
		Id:          id,
		Username:    username,
		DisplayName: displayName,
	})
}

func (s *mysqlStorage) SetUserRole(id int64, role reports.UserRole) error {
	return models.SetUserRoleV1(models.SetUserRoleV1Opts{Db: s.db, Id: id, Role: role})
}

func (s *mysqlStorage) GetAdminGroup(chatId int64) (*models.AdminGroup, error) {
	return models.GetAdminGroupV1(models.GetAdminGroupV1Opts{Db: s.db, ChatId: chatId})
}

func (s *mysqlStorage) ListActiveAdminGroups() ([]models.AdminGroup, error) {
	return models.ListActiveAdminGroupsV1(models.ListActiveAdminGroupsV1Opts{Db: s.db})
}

func (s *mysqlStorage) ActivateAdminGroup(chatId int64, title string, activatedBy int64) error {
	return models.ActivateAdminGroupV1(models.ActivateAdminGroupV1Opts{
		Db:          s.db,
		ChatId:      chatId,
		Title:       title,
		ActivatedBy: activatedBy,
	})
}

func (s *mysqlStorage) GetDefaultTemplate(orderType reports.OrderType) (*models.ReportTemplate, error) {
	return models.GetDefaultTemplateV1(models.GetDefaultTemplateV1Opts{Db: s.db, Type: orderType})
}

func (s *mysqlStorage) GetSetting(name string) (string, error) {
	return models.GetSettingV1(models.GetSettingV1Opts{Db: s.db, Name: name})
}

func (s *mysqlStorage) GetOrderStats() (*models.OrderStats, error) {
	return models.GetOrderStatsV1(models.GetOrderStatsV1Opts{Db: s.db})
}
