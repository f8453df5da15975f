package audit

import (
	"errors"
	"time"
)

var (
	ErrorNotInitialized = errors.New("not_initialized")
)

type Verb string

const (
	Activate   Verb = "activate"
	Approve    Verb = "approve"
	Deactivate Verb = "deactivate"
	Modify     Verb = "modify"
	Reject     Verb = "reject"
	Submit     Verb = "submit"
)

type EntityType string

const (
	AdminGroupEntity EntityType = "admin_group"
	UserEntity       EntityType = "user"
)

type ResourceType string

const (
	AdminGroupResource ResourceType = "admin_group"
	AdminPanelResource ResourceType = "admin_panel"
	OrderResource      ResourceType = "order"
)

type Status string

const (
	Success Status = "success"
	Failed  Status = "failed"
)

type LogEntries []LogEntry

type LogEntry struct {
	EntityId     string         `bson:"entityId"`
	EntityType   EntityType     `bson:"entityType"`
	Verb         Verb           `bson:"verb"`
	ResourceId   string         `bson:"resourceId,omitempty"`
	ResourceType ResourceType   `bson:"resourceType,omitempty"`
	Status       Status         `bson:"status,omitempty"`
	Timestamp    time.Time      `bson:"timestamp"`
	Data         map[string]any `bson:"data,omitempty"`
}

type Logger interface {
	Log(log LogEntry) error
	GetByEntity(entityId string, entityType EntityType, cursor time.Time, limit int64) (LogEntries, error)
}
