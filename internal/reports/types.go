package reports

// OrderType is the closed set of financial report types employees can
// submit
type OrderType string

const (
	OrderTypeDeposit    OrderType = "deposit"
	OrderTypeWithdrawal OrderType = "withdrawal"
	OrderTypeRefund     OrderType = "refund"
)

var OrderTypes = []OrderType{
	OrderTypeDeposit,
	OrderTypeWithdrawal,
	OrderTypeRefund,
}

func (t OrderType) IsValid() bool {
	for _, knownType := range OrderTypes {
		if t == knownType {
			return true
		}
	}
	return false
}

// OrderStatus is an order's position in the approval lifecycle; only
// `pending` may transition anywhere else, terminal states never regress
type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusApproved         OrderStatus = "approved"
	StatusRejected         OrderStatus = "rejected"
	StatusModifying        OrderStatus = "modifying"
	StatusApprovedModified OrderStatus = "approved_modified"
)

var terminalStatuses = map[OrderStatus]bool{
	StatusApproved:         true,
	StatusRejected:         true,
	StatusApprovedModified: true,
}

// IsTerminal returns true if the status is a terminal status (no further
// transitions allowed)
func (s OrderStatus) IsTerminal() bool {
	return terminalStatuses[s]
}

func (s OrderStatus) String() string {
	return string(s)
}

// ExtractionStatus reflects the outcome of parsing structured fields out
// of a free-text submission
type ExtractionStatus string

const (
	ExtractionPending ExtractionStatus = "pending"
	ExtractionSuccess ExtractionStatus = "success"
	ExtractionFailed  ExtractionStatus = "failed"
)

// ApprovalSurface is the channel an approval action originated from
type ApprovalSurface string

const (
	SurfaceGroupChat ApprovalSurface = "group"
	SurfaceBotPanel  ApprovalSurface = "panel"
	SurfaceDashboard ApprovalSurface = "dashboard"
)

// ExtractedFields is the parser's structured output; empty strings mean
// the field was not captured
type ExtractedFields struct {
	CustomerName    string           `json:"customerName"`
	ProjectName     string           `json:"projectName"`
	AmountExtracted string           `json:"amountExtracted"`
	Status          ExtractionStatus `json:"status"`
}

// UserRole distinguishes submitters from approvers
type UserRole string

const (
	RoleEmployee UserRole = "employee"
	RoleAdmin    UserRole = "admin"
)
