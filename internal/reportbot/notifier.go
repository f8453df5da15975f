package reportbot

import (
	"reportdesk/internal/common"
	"reportdesk/internal/reportbot/models"
)

// broadcastNewOrder fans a fresh pending order out to every active
// admin group with approval buttons attached. Each send is independent;
// a group that cannot be reached is logged and skipped, the order is
// already committed. The ids of the messages that did land are persisted
// so resolutions can find and edit them later
func (s *Service) broadcastNewOrder(order *models.Order, submitterName string) {
	groups, err := s.Storage.ListActiveAdminGroups()
	if err != nil {
		s.log(common.LogLevelError, "failed to list admin groups for order[%s]: %s", order.Id, err)
		return
	}
	if len(groups) == 0 {
		s.log(common.LogLevelWarn, "no active admin groups to notify about order[%s]", order.Id)
		return
	}

	notification := createOrderNotification(order, submitterName)
	groupMessageIds := map[int64]int{}
	for _, group := range groups {
		messageId, err := s.Bot.SendMessage(group.ChatId, notification, createApprovalKeyboard(order.Id))
		if err != nil {
			notificationFailuresCounter.Inc()
			s.log(common.LogLevelWarn, "failed to notify group[%v] about order[%s]: %s", group.ChatId, order.Id, err)
			continue
		}
		groupMessageIds[group.ChatId] = messageId
	}

	if len(groupMessageIds) > 0 {
		if err := s.Storage.SetOrderGroupMessages(order.Id, groupMessageIds); err != nil {
			s.log(common.LogLevelError, "failed to record group message ids of order[%s]: %s", order.Id, err)
		}
		order.GroupMessageIds = groupMessageIds
	}
}
