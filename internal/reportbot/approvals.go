package reportbot

import (
	"errors"
	"fmt"
	"reportdesk/internal/audit"
	"reportdesk/internal/common"
	"reportdesk/internal/reports"
)

// ResolveOrderRequest describes a single attempt to move a pending
// order into a terminal status, from any approval surface
type ResolveOrderRequest struct {
	// OrderId is the order's UUID
	OrderId string

	// Status is the terminal status to transition to
	Status reports.OrderStatus

	ApproverId   int64
	ApproverName string

	// Surface is the channel this action came from
	Surface reports.ApprovalSurface

	// OriginChatId/OriginMessageId locate the message the action was
	// triggered from so it can be edited to show the resolution; both
	// zero for surfaces without an originating message (dashboard)
	OriginChatId    int64
	OriginMessageId int

	// RejectionReason is recorded and relayed when Status is rejected
	RejectionReason *string

	// ModifiedContent is the admin's corrected text when Status is
	// approved_modified
	ModifiedContent *string

	// OriginalContent when set overrides the stored content in the
	// before/after notification; it is the snapshot taken when the
	// modification flow started, ie. what the admin actually saw
	OriginalContent string
}

// ResolveOrder is the order lifecycle's single write path. The
// persistence layer's pending-status guard decides races: of two
// concurrent attempts exactly one commits, the other receives
// models.ErrorAlreadyProcessed. Everything after the commit is
// notification fan-out whose failures never undo the transition
func (s *Service) ResolveOrder(req ResolveOrderRequest) error {
	order, err := s.Storage.GetOrder(req.OrderId)
	if err != nil {
		return fmt.Errorf("failed to fetch order[%s]: %w", req.OrderId, err)
	}

	if err := s.Storage.ResolveOrder(ResolveOrderOpts{
		Id:              req.OrderId,
		Status:          req.Status,
		ApproverId:      req.ApproverId,
		ApproverName:    req.ApproverName,
		Surface:         req.Surface,
		RejectionReason: req.RejectionReason,
		ModifiedContent: req.ModifiedContent,
	}); err != nil {
		return err
	}
	order.Status = req.Status
	order.ApproverId = &req.ApproverId
	order.ApproverName = &req.ApproverName
	order.RejectionReason = req.RejectionReason
	if req.ModifiedContent != nil {
		order.ModifiedContent = req.ModifiedContent
	}
	ordersResolvedCounter.WithLabelValues(string(req.Status), string(req.Surface)).Inc()
	s.log(common.LogLevelInfo, "order[%s/%s] resolved to %s by user[%v] via %s", order.Id, order.OrderNumber, req.Status, req.ApproverId, req.Surface)
	s.auditResolution(req)

	resolvedText := createResolvedNotification(order, req.Status, req.ApproverName, req.RejectionReason)

	// edit the originating message to show the resolution and drop its
	// action buttons; if the edit fails (message too old, id unknown) a
	// fresh message is sent instead
	if req.OriginChatId != 0 && req.OriginMessageId != 0 {
		if err := s.Bot.UpdateMessage(req.OriginChatId, req.OriginMessageId, resolvedText); err != nil {
			s.log(common.LogLevelWarn, "failed to edit originating message[%v] in chat[%v], sending a fresh one: %s", req.OriginMessageId, req.OriginChatId, err)
			if _, err := s.Bot.SendMessage(req.OriginChatId, resolvedText); err != nil {
				notificationFailuresCounter.Inc()
				s.log(common.LogLevelWarn, "failed to send resolution to chat[%v]: %s", req.OriginChatId, err)
			}
		}
	}

	if req.Status == reports.StatusApprovedModified && req.ModifiedContent != nil {
		originalContent := order.Content
		if req.OriginalContent != "" {
			originalContent = req.OriginalContent
		}
		diff := createModificationDiff(order, originalContent, *req.ModifiedContent, req.ApproverName)
		s.send(order.EmployeeId, diff)
		s.broadcastToAdminGroups(diff, req.OriginChatId)
	} else {
		s.send(order.EmployeeId, createEmployeeResolutionMessage(order, req.Status, req.ApproverName, req.RejectionReason))
	}

	// best-effort sweep over every other group that received the
	// original broadcast so stale action buttons do not remain live; the
	// authoritative status change has already committed, failures here
	// are logged and swallowed
	for groupChatId, messageId := range order.GroupMessageIds {
		if groupChatId == req.OriginChatId {
			continue
		}
		if err := s.Bot.UpdateMessage(groupChatId, messageId, resolvedText); err != nil {
			notificationFailuresCounter.Inc()
			s.log(common.LogLevelWarn, "failed to resolve notification message[%v] in group[%v]: %s", messageId, groupChatId, err)
		}
	}
	return nil
}

// broadcastToAdminGroups sends `message` to every active admin group,
// catching and logging each failure individually
func (s *Service) broadcastToAdminGroups(message string, skipChatId int64) {
	groups, err := s.Storage.ListActiveAdminGroups()
	if err != nil {
		s.log(common.LogLevelError, "failed to list admin groups for broadcast: %s", err)
		return
	}
	for _, group := range groups {
		if group.ChatId == skipChatId {
			continue
		}
		if _, err := s.Bot.SendMessage(group.ChatId, message); err != nil {
			notificationFailuresCounter.Inc()
			s.log(common.LogLevelWarn, "failed to broadcast to group[%v]: %s", group.ChatId, err)
		}
	}
}

func (s *Service) auditResolution(req ResolveOrderRequest) {
	verb := audit.Approve
	switch req.Status {
	case reports.StatusRejected:
		verb = audit.Reject
	case reports.StatusApprovedModified:
		verb = audit.Modify
	}
	if err := audit.Log(audit.LogEntry{
		EntityId:     fmt.Sprintf("%v", req.ApproverId),
		EntityType:   audit.UserEntity,
		Verb:         verb,
		ResourceId:   req.OrderId,
		ResourceType: audit.OrderResource,
		Status:       audit.Success,
		Data:         map[string]any{"surface": string(req.Surface)},
	}); err != nil && !errors.Is(err, audit.ErrorNotInitialized) {
		s.log(common.LogLevelWarn, "failed to audit resolution of order[%s]: %s", req.OrderId, err)
	}
}
