package reportbot

import (
	"errors"
	"reportdesk/internal/reportbot/models"
	"reportdesk/internal/reports"
	"strings"
	"sync"
	"testing"
)

func createPendingOrder(t *testing.T, storage *fakeStorage) *models.Order {
	t.Helper()
	order, err := storage.CreateOrder(
		reports.OrderTypeDeposit,
		100,
		validSubmissionText,
		reports.Parse(validSubmissionText, reports.OrderTypeDeposit),
	)
	if err != nil {
		t.Fatalf("failed to create order: %s", err)
	}
	return order
}

func TestApprovalExclusivity(t *testing.T) {
	service, storage, _ := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	order := createPendingOrder(t, storage)

	var wg sync.WaitGroup
	results := make([]error, 2)
	requests := []ResolveOrderRequest{
		{OrderId: order.Id, Status: reports.StatusApproved, ApproverId: 200, ApproverName: "Admin A", Surface: reports.SurfaceGroupChat},
		{OrderId: order.Id, Status: reports.StatusRejected, ApproverId: 201, ApproverName: "Admin B", Surface: reports.SurfaceDashboard},
	}
	for i := range requests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = service.ResolveOrder(requests[i])
		}(i)
	}
	wg.Wait()

	succeeded, alreadyProcessed := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, models.ErrorAlreadyProcessed):
			alreadyProcessed++
		default:
			t.Fatalf("unexpected error: %s", err)
		}
	}
	if succeeded != 1 || alreadyProcessed != 1 {
		t.Fatalf("expected exactly one winner and one already-processed, got %v/%v", succeeded, alreadyProcessed)
	}
	resolved, _ := storage.GetOrder(order.Id)
	if !resolved.Status.IsTerminal() {
		t.Errorf("expected a terminal status, got %s", resolved.Status)
	}
	if results[0] == nil && resolved.Status != reports.StatusApproved {
		t.Errorf("expected the approval winner to leave the order approved, got %s", resolved.Status)
	}
	if results[1] == nil && resolved.Status != reports.StatusRejected {
		t.Errorf("expected the rejection winner to leave the order rejected, got %s", resolved.Status)
	}
}

func TestRejectionReasonRelayedToEmployee(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	order := createPendingOrder(t, storage)

	reason := "duplicate submission"
	if err := service.ResolveOrder(ResolveOrderRequest{
		OrderId:         order.Id,
		Status:          reports.StatusRejected,
		ApproverId:      200,
		ApproverName:    "Admin",
		Surface:         reports.SurfaceBotPanel,
		RejectionReason: &reason,
	}); err != nil {
		t.Fatalf("failed to reject: %s", err)
	}

	messages := gateway.sentTo(100)
	if len(messages) == 0 || !strings.Contains(messages[0].Text, "duplicate submission") {
		t.Errorf("expected the rejection reason in the employee notification, got %+v", messages)
	}
}

func TestOriginatingEditFallsBackToSend(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	order := createPendingOrder(t, storage)
	gateway.FailEdits = true

	if err := service.ResolveOrder(ResolveOrderRequest{
		OrderId:         order.Id,
		Status:          reports.StatusApproved,
		ApproverId:      200,
		ApproverName:    "Admin",
		Surface:         reports.SurfaceGroupChat,
		OriginChatId:    1,
		OriginMessageId: 42,
	}); err != nil {
		t.Fatalf("expected the resolution to succeed despite the failing edit: %s", err)
	}

	fallbacks := gateway.sentTo(1)
	if len(fallbacks) != 1 || !strings.Contains(fallbacks[0].Text, "approved") {
		t.Errorf("expected a fresh resolution message in the originating chat, got %+v", fallbacks)
	}
}

func TestSecondaryGroupMessagesResolved(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	order := createPendingOrder(t, storage)
	if err := storage.SetOrderGroupMessages(order.Id, map[int64]int{1: 10, 2: 20}); err != nil {
		t.Fatalf("failed to seed group message ids: %s", err)
	}

	if err := service.ResolveOrder(ResolveOrderRequest{
		OrderId:         order.Id,
		Status:          reports.StatusApproved,
		ApproverId:      200,
		ApproverName:    "Admin",
		Surface:         reports.SurfaceGroupChat,
		OriginChatId:    1,
		OriginMessageId: 10,
	}); err != nil {
		t.Fatalf("failed to approve: %s", err)
	}

	editedOrigin, editedSecondary := false, false
	for _, edit := range gateway.Edited {
		if edit.ChatId == 1 && edit.MessageId == 10 {
			editedOrigin = true
		}
		if edit.ChatId == 2 && edit.MessageId == 20 {
			editedSecondary = true
		}
	}
	if !editedOrigin {
		t.Errorf("expected the originating group's message to be edited")
	}
	if !editedSecondary {
		t.Errorf("expected the secondary group's message to be edited")
	}
}

func TestSecondarySurfaceFailureIsNotFatal(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	order := createPendingOrder(t, storage)
	if err := storage.SetOrderGroupMessages(order.Id, map[int64]int{2: 20}); err != nil {
		t.Fatalf("failed to seed group message ids: %s", err)
	}
	gateway.FailEdits = true
	gateway.FailSendsTo[2] = true

	if err := service.ResolveOrder(ResolveOrderRequest{
		OrderId:      order.Id,
		Status:       reports.StatusApproved,
		ApproverId:   200,
		ApproverName: "Admin",
		Surface:      reports.SurfaceDashboard,
	}); err != nil {
		t.Fatalf("expected the resolution to succeed despite secondary failures: %s", err)
	}
	resolved, _ := storage.GetOrder(order.Id)
	if resolved.Status != reports.StatusApproved {
		t.Errorf("expected the authoritative status change to stand, got %s", resolved.Status)
	}
}

func TestModificationNotifiesBeforeAndAfter(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	storage.addActiveGroup(1)
	storage.addActiveGroup(2)
	order := createPendingOrder(t, storage)

	modified := "customer: Zhang San\nproject: VIP top-up\namount: 4500"
	if err := service.ResolveOrder(ResolveOrderRequest{
		OrderId:         order.Id,
		Status:          reports.StatusApprovedModified,
		ApproverId:      200,
		ApproverName:    "Admin",
		Surface:         reports.SurfaceBotPanel,
		ModifiedContent: &modified,
		OriginalContent: order.Content,
	}); err != nil {
		t.Fatalf("failed to modify: %s", err)
	}

	employeeMessages := gateway.sentTo(100)
	if len(employeeMessages) == 0 {
		t.Fatalf("expected the employee to be notified")
	}
	diff := employeeMessages[0].Text
	if !strings.Contains(diff, "amount: 5000") || !strings.Contains(diff, "amount: 4500") {
		t.Errorf("expected both original and modified content side-by-side, got '%s'", diff)
	}
	for _, groupChatId := range []int64{1, 2} {
		groupMessages := gateway.sentTo(groupChatId)
		if len(groupMessages) == 0 || !strings.Contains(groupMessages[0].Text, "amount: 4500") {
			t.Errorf("expected group[%v] to receive the before/after notification, got %+v", groupChatId, groupMessages)
		}
	}
}

func TestResolveUnknownOrder(t *testing.T) {
	service, _, _ := newTestService(t)
	err := service.ResolveOrder(ResolveOrderRequest{
		OrderId:      "missing",
		Status:       reports.StatusApproved,
		ApproverId:   200,
		ApproverName: "Admin",
		Surface:      reports.SurfaceDashboard,
	})
	if !errors.Is(err, models.ErrorNotFound) {
		t.Errorf("expected a not-found error, got %v", err)
	}
}
