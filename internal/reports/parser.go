package reports

import (
	"fmt"
	"regexp"
	"strings"
)

// label vocabularies accepted before a full-width or half-width colon;
// longer synonyms come first so the alternation prefers them
var (
	customerLabels = []string{
		"customer's name",
		"customer name",
		"customer",
		"客户名称",
		"客户姓名",
		"客户",
	}
	projectLabels = []string{
		"project name",
		"project",
		"项目名称",
		"项目",
	}
	amountLabelsByType = map[OrderType][]string{
		OrderTypeDeposit: {
			"deposit amount",
			"存款金额",
			"入款金额",
		},
		OrderTypeWithdrawal: {
			"withdrawal amount",
			"取款金额",
			"出款金额",
		},
		OrderTypeRefund: {
			"refund amount",
			"退款金额",
		},
	}
	genericAmountLabels = []string{
		"amount",
		"金额",
	}
)

var strictAmountPattern = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// Parse scans `text` for colon-labeled fields and returns the structured
// result; it never fails, malformed input yields an empty result with
// ExtractionFailed status. When `orderType` is a known type, that type's
// amount labels are matched first so a stray amount field meant for a
// different section is not picked up; the generic labels remain as a
// fallback for submissions that just write "amount"
func Parse(text string, orderType OrderType) ExtractedFields {
	fields := ExtractedFields{
		Status: ExtractionFailed,
	}
	if strings.TrimSpace(text) == "" {
		return fields
	}

	fields.CustomerName = extractLabeledValue(text, customerLabels)
	fields.ProjectName = extractLabeledValue(text, projectLabels)

	rawAmount := ""
	if typed, ok := amountLabelsByType[orderType]; ok {
		rawAmount = extractLabeledValue(text, typed)
	}
	if rawAmount == "" {
		rawAmount = extractLabeledValue(text, genericAmountLabels)
	}
	if rawAmount != "" {
		fields.AmountExtracted = cleanAmount(rawAmount)
	}

	if fields.CustomerName != "" || fields.ProjectName != "" || fields.AmountExtracted != "" {
		fields.Status = ExtractionSuccess
	}
	return fields
}

// HasAnyLabel reports whether `text` contains at least one recognisable
// colon-labeled field from the customer/project/amount vocabularies
func HasAnyLabel(text string) bool {
	labels := []string{}
	labels = append(labels, customerLabels...)
	labels = append(labels, projectLabels...)
	for _, typed := range amountLabelsByType {
		labels = append(labels, typed...)
	}
	labels = append(labels, genericAmountLabels...)
	return labelPattern(labels).MatchString(text)
}

// extractLabeledValue captures the value following any of `labels`; the
// first pass requires a line terminator after the value, the second
// falls back to end-of-string so submissions without a trailing newline
// still parse. Labels only match at the start of a line, which keeps the
// generic "amount" label from matching inside "deposit amount"
func extractLabeledValue(text string, labels []string) string {
	alternation := labelAlternation(labels)
	linePattern := regexp.MustCompile(fmt.Sprintf(`(?im)^[ \t]*(?:%s)\s*[:：][ \t]*([^\n]+)\n`, alternation))
	if matches := linePattern.FindStringSubmatch(text); matches != nil {
		return strings.TrimSpace(matches[1])
	}
	tailPattern := regexp.MustCompile(fmt.Sprintf(`(?im)^[ \t]*(?:%s)\s*[:：][ \t]*([^\n]+)\z`, alternation))
	if matches := tailPattern.FindStringSubmatch(text); matches != nil {
		return strings.TrimSpace(matches[1])
	}
	return ""
}

func labelPattern(labels []string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)(?:%s)\s*[:：]`, labelAlternation(labels)))
}

func labelAlternation(labels []string) string {
	quoted := make([]string, 0, len(labels))
	for _, label := range labels {
		quoted = append(quoted, regexp.QuoteMeta(label))
	}
	return strings.Join(quoted, "|")
}

// cleanAmount strips thousands separators and returns the amount only if
// it matches the strict numeric-with-optional-decimal pattern; captures
// that do not match are discarded rather than defaulted to zero
func cleanAmount(raw string) string {
	cleaned := strings.NewReplacer(",", "", "，", "").Replace(strings.TrimSpace(raw))
	if !strictAmountPattern.MatchString(cleaned) {
		return ""
	}
	return cleaned
}
