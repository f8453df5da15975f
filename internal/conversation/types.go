package conversation

import (
	"reportdesk/internal/reports"
)

// StateKind discriminates the state families a chat can be in; a chat
// holds at most one state at a time
type StateKind string

const (
	KindGroupActivation   StateKind = "group-activation"
	KindAdminActivation   StateKind = "admin-activation"
	KindReportSubmission  StateKind = "report-submission"
	KindOrderModification StateKind = "order-modification"
)

// State is the tagged union of per-chat conversational states; each
// variant carries only the fields its flow needs so invalid field
// combinations cannot be constructed
type State interface {
	Kind() StateKind
}

// GroupActivationState tracks a group chat entering an activation code
// on the numeric keypad
type GroupActivationState struct {
	// CodeBuffer is the digits entered so far
	CodeBuffer string

	// KeyboardMessageId locates the keypad message so its display row
	// can be edited in place
	KeyboardMessageId int

	// StartedBy is the user who invoked the activation command
	StartedBy int64
}

func (GroupActivationState) Kind() StateKind { return KindGroupActivation }

// AdminActivationState tracks a user unlocking the personal admin panel
// via the numeric keypad
type AdminActivationState struct {
	CodeBuffer        string
	KeyboardMessageId int
}

func (AdminActivationState) Kind() StateKind { return KindAdminActivation }

// ReportSubmissionState tracks an employee who has been handed a report
// template and is expected to send it back filled in
type ReportSubmissionState struct {
	Type       reports.OrderType
	EmployeeId int64
}

func (ReportSubmissionState) Kind() StateKind { return KindReportSubmission }

// OrderModificationState tracks an admin who pressed "modify" on an
// order and is expected to send the corrected content
type OrderModificationState struct {
	OrderId string

	// OriginalContent is snapshotted when the flow starts so the
	// before/after notification reflects what the admin actually saw
	OriginalContent string

	AdminId int64
}

func (OrderModificationState) Kind() StateKind { return KindOrderModification }
