package reportbot

import (
	"reportdesk/internal/conversation"
	"reportdesk/internal/integrations/telegram"
	"reportdesk/internal/reports"
	"strings"
	"testing"
)

const validSubmissionText = "customer: Zhang San\nproject: VIP top-up\namount: 5000"

func TestCancellationPrecedence(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	service.States.Put(100, conversation.ReportSubmissionState{
		Type:       reports.OrderTypeDeposit,
		EmployeeId: 100,
	})

	service.HandleUpdate(privateTextUpdate(100, "cancel"))

	if _, hasState := service.States.Get(100); hasState {
		t.Errorf("expected the cancel keyword to clear the active state")
	}
	messages := gateway.sentTo(100)
	if len(messages) == 0 || !strings.Contains(messages[len(messages)-1].Text, "cancelled") {
		t.Errorf("expected a cancellation acknowledgment, got %+v", messages)
	}
}

func TestCancellationWithoutState(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)

	service.HandleUpdate(privateTextUpdate(100, "/cancel"))

	messages := gateway.sentTo(100)
	if len(messages) == 0 || !strings.Contains(messages[len(messages)-1].Text, "nothing to cancel") {
		t.Errorf("expected a nothing-to-cancel response, got %+v", messages)
	}
}

func TestIdempotentWebhookDelivery(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	storage.addActiveGroup(1)
	service.States.Put(100, conversation.ReportSubmissionState{
		Type:       reports.OrderTypeDeposit,
		EmployeeId: 100,
	})

	update := privateTextUpdate(100, validSubmissionText)
	service.HandleUpdate(update)
	service.HandleUpdate(update)

	orders, _ := storage.ListOrders(nil, 0)
	if len(orders) != 1 {
		t.Fatalf("expected redelivery to create exactly 1 order, got %v", len(orders))
	}
	if notifications := gateway.sentTo(1); len(notifications) != 1 {
		t.Errorf("expected exactly 1 group notification, got %v", len(notifications))
	}
}

func TestGroupChatIgnoresPlainText(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)

	service.HandleUpdate(groupTextUpdate(1, 100, "hello everyone"))

	if len(gateway.Sent) != 0 {
		t.Errorf("expected plain group text to be ignored, got %+v", gateway.Sent)
	}
	if service.States.Len() != 0 {
		t.Errorf("expected no state to be created")
	}
}

func TestMenuButtonInterruptsActiveFlow(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	storage.addTemplate(reports.OrderTypeDeposit, "customer: \nproject: \namount: ")
	storage.addTemplate(reports.OrderTypeWithdrawal, "customer: \nproject: \namount: ")

	service.HandleUpdate(privateTextUpdate(100, MenuSubmitDeposit))
	service.HandleUpdate(privateTextUpdate(100, MenuSubmitWithdrawal))

	state, hasState := service.States.Get(100)
	if !hasState {
		t.Fatalf("expected the new flow's state to be present")
	}
	submission, ok := state.(conversation.ReportSubmissionState)
	if !ok || submission.Type != reports.OrderTypeWithdrawal {
		t.Errorf("expected a withdrawal submission state, got %+v", state)
	}
	abandoned := false
	for _, message := range gateway.sentTo(100) {
		if strings.Contains(message.Text, "abandoned") {
			abandoned = true
		}
	}
	if !abandoned {
		t.Errorf("expected a flow-abandonment notice")
	}
}

func TestDisabledUserCannotSubmit(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, true)
	service.States.Put(100, conversation.ReportSubmissionState{
		Type:       reports.OrderTypeDeposit,
		EmployeeId: 100,
	})

	service.HandleUpdate(privateTextUpdate(100, validSubmissionText))

	orders, _ := storage.ListOrders(nil, 0)
	if len(orders) != 0 {
		t.Fatalf("expected no order from a disabled user")
	}
	messages := gateway.sentTo(100)
	if len(messages) == 0 || !strings.Contains(messages[0].Text, "disabled") {
		t.Errorf("expected a disabled-account message, got %+v", messages)
	}
}

func TestInvalidSubmissionKeepsStateAndEchoesCount(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	service.States.Put(100, conversation.ReportSubmissionState{
		Type:       reports.OrderTypeDeposit,
		EmployeeId: 100,
	})

	service.HandleUpdate(privateTextUpdate(100, "customer:A"))

	if _, hasState := service.States.Get(100); !hasState {
		t.Errorf("expected the submission state to survive a validation failure")
	}
	messages := gateway.sentTo(100)
	if len(messages) == 0 || !strings.Contains(messages[0].Text, "10 characters") {
		t.Errorf("expected the character count to be echoed, got %+v", messages)
	}
}

func TestSubmissionReceiptRepliesToReport(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	service.States.Put(100, conversation.ReportSubmissionState{
		Type:       reports.OrderTypeDeposit,
		EmployeeId: 100,
	})

	update := privateTextUpdate(100, validSubmissionText)
	service.HandleUpdate(update)

	var receipt *fakeMessage
	for _, message := range gateway.sentTo(100) {
		if strings.Contains(message.Text, "awaiting approval") {
			copied := message
			receipt = &copied
		}
	}
	if receipt == nil {
		t.Fatalf("expected a submission receipt, got %+v", gateway.sentTo(100))
	}
	if receipt.ReplyTo != update.MessageId {
		t.Errorf("expected the receipt to reply to message[%v], got reply-to[%v]", update.MessageId, receipt.ReplyTo)
	}
}

func TestProfileRefreshKeepsKnownNames(t *testing.T) {
	service, storage, _ := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)

	// telegram profiles may omit names entirely
	service.HandleUpdate(&telegram.Update{
		UpdateId:  nextUpdateId(),
		ChatId:    100,
		ChatType:  "private",
		Message:   CommandStart,
		MessageId: int(nextUpdateId()),
		SenderId:  100,
	})

	user, err := storage.GetUser(100)
	if err != nil {
		t.Fatalf("failed to fetch user: %s", err)
	}
	if user.Name() != "Zhang" {
		t.Errorf("expected the stored display name to survive an empty profile refresh, got '%s'", user.Name())
	}
}

func TestCallbackApprovalRequiresAdmin(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	order, _ := storage.CreateOrder(reports.OrderTypeDeposit, 100, validSubmissionText, reports.ExtractedFields{})

	service.HandleUpdate(callbackUpdate(100, "private", 100, 1, callbackPrefixApprove+order.Id))

	refreshed, _ := storage.GetOrder(order.Id)
	if refreshed.Status != reports.StatusPending {
		t.Fatalf("expected the order to stay pending, got %s", refreshed.Status)
	}
	if !strings.Contains(gateway.lastAnswer(), "not authorised") {
		t.Errorf("expected a permission-denied answer, got '%s'", gateway.lastAnswer())
	}
}

func TestGroupApprovalRequiresActiveGroup(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(200, "Admin", reports.RoleAdmin, false)
	order, _ := storage.CreateOrder(reports.OrderTypeDeposit, 100, validSubmissionText, reports.ExtractedFields{})

	// group 9 was never activated
	service.HandleUpdate(callbackUpdate(9, "group", 200, 1, callbackPrefixApprove+order.Id))

	refreshed, _ := storage.GetOrder(order.Id)
	if refreshed.Status != reports.StatusPending {
		t.Fatalf("expected the order to stay pending, got %s", refreshed.Status)
	}
	if !strings.Contains(gateway.lastAnswer(), "not an active admin group") {
		t.Errorf("expected an inactive-group answer, got '%s'", gateway.lastAnswer())
	}
}

func TestRedeliveredCallbackIsDropped(t *testing.T) {
	service, storage, gateway := newTestService(t)
	storage.addUser(200, "Admin", reports.RoleAdmin, false)
	storage.addUser(100, "Zhang", reports.RoleEmployee, false)
	order, _ := storage.CreateOrder(reports.OrderTypeDeposit, 100, validSubmissionText, reports.ExtractedFields{})

	update := callbackUpdate(200, "private", 200, 1, callbackPrefixApprove+order.Id)
	service.HandleUpdate(update)
	answersAfterFirst := len(gateway.Answers)
	service.HandleUpdate(update)

	if len(gateway.Answers) != answersAfterFirst {
		t.Errorf("expected the redelivered callback to produce no further responses")
	}
}
