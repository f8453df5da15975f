package reports

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const minimumSubmissionLength = 30

const submissionExample = "customer: Zhang San\nproject: VIP top-up\namount: 5000"

// placeholder indicator classes; a submission containing two or more
// distinct classes is treated as an unfilled template rather than a
// formatting mistake
var placeholderIndicators = []*regexp.Regexp{
	regexp.MustCompile(`\{[^{}\n]*\}`),
	regexp.MustCompile(`\[[^\[\]\n]*\]|【[^【】\n]*】`),
	regexp.MustCompile(`\(\s*\)|（\s*）`),
	regexp.MustCompile(`_{3,}|\.{4,}|。{3,}`),
}

// ValidationResult carries the verdict plus the actionable message shown
// to the submitting user when invalid
type ValidationResult struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// ValidateSubmission applies the submission rules in order, stopping at
// the first failure. `fields` is the parser output for the same text
func ValidateSubmission(text string, fields ExtractedFields) ValidationResult {
	length := utf8.RuneCountInString(strings.TrimSpace(text))
	if length < minimumSubmissionLength {
		return ValidationResult{
			Message: fmt.Sprintf(
				"your report is too short (%v characters, need at least %v); please fill in the full template, eg.\n\n%s",
				length,
				minimumSubmissionLength,
				submissionExample,
			),
		}
	}

	// an unfilled template is a different user mistake than a formatting
	// error and gets different guidance, so it is classified before the
	// field checks that it would otherwise trip
	if IsUnfilledTemplate(text) {
		return ValidationResult{
			Message: "it looks like you sent the report template without filling it in; please replace every placeholder with a real value before sending",
		}
	}

	if !HasAnyLabel(text) {
		return ValidationResult{
			Message: fmt.Sprintf(
				"no recognisable fields were found in your report; use a 'label: value' line per field, eg.\n\n%s",
				submissionExample,
			),
		}
	}

	missing := []string{}
	if fields.CustomerName == "" {
		missing = append(missing, "customer")
	}
	if fields.ProjectName == "" {
		missing = append(missing, "project")
	}
	if !isStrictlyPositiveAmount(fields.AmountExtracted) {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return ValidationResult{
			Message: fmt.Sprintf(
				"your report is missing the following field(s): %s; please complete them and resend",
				strings.Join(missing, ", "),
			),
		}
	}

	return ValidationResult{IsValid: true}
}

// IsUnfilledTemplate reports whether `text` contains two or more distinct
// placeholder indicator classes
func IsUnfilledTemplate(text string) bool {
	distinctIndicators := 0
	for _, indicator := range placeholderIndicators {
		if indicator.MatchString(text) {
			distinctIndicators++
		}
	}
	return distinctIndicators >= 2
}

func isStrictlyPositiveAmount(amount string) bool {
	if amount == "" || !strictAmountPattern.MatchString(amount) {
		return false
	}
	// strictAmountPattern only admits digits and one optional decimal
	// point, so anything containing a non-zero digit is positive
	return strings.ContainsAny(amount, "123456789")
}
