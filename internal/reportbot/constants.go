package reportbot

import "time"

const (
	// CommandStart is sent by Telegram when a user first opens the bot
	CommandStart = "/start"

	// CommandActivateGroup is the only command honoured in group chats;
	// it opens the numeric keypad for group activation
	CommandActivateGroup = "/activate"

	// CommandAdminPanel opens the numeric keypad for unlocking the
	// personal admin panel in a private chat
	CommandAdminPanel = "/admin"

	CommandCancel = "/cancel"
)

// persistent reply-menu button labels; incoming private text is matched
// against these before being treated as flow input
const (
	MenuSubmitDeposit    = "📥 Submit deposit"
	MenuSubmitWithdrawal = "📤 Submit withdrawal"
	MenuSubmitRefund     = "↩️ Submit refund"
	MenuPendingOrders    = "📋 Pending orders"
	MenuOrderStats       = "📊 Statistics"
	MenuCancel           = "🚫 Cancel"
)

// cancellation keywords; checked before any state dispatch so a user can
// always escape a stuck flow
var cancelKeywords = []string{
	CommandCancel,
	MenuCancel,
	"cancel",
	"取消",
}

// callback data is namespaced by prefix; order actions carry the order's
// UUID after the prefix, keypad actions carry a key token
const (
	callbackPrefixApprove = "approve:"
	callbackPrefixReject  = "reject:"
	callbackPrefixModify  = "modify:"
	callbackPrefixKeypad  = "kb:"
)

// keypad key tokens following callbackPrefixKeypad
const (
	keypadKeyDelete  = "del"
	keypadKeyConfirm = "ok"
	keypadKeyCancel  = "cancel"

	// keypadKeyNoop backs the disabled display row
	keypadKeyNoop = "noop"
)

// updateDedupWindow bounds the recent-history window within which a
// redelivered update_id is dropped
const updateDedupWindow = 24 * time.Hour

const updateDedupKeyPrefix = "reportbot:updates:"
