package reports

import (
	"strings"
	"time"
)

// RenderTemplate substitutes the fixed set of named placeholders into an
// admin-configured report template before it is handed to a submitter
func RenderTemplate(content string, submitterName string, at time.Time) string {
	replacer := strings.NewReplacer(
		"{submitter}", submitterName,
		"{date}", at.Format("2006-01-02"),
		"{time}", at.Format("2006-01-02 15:04:05"),
	)
	return replacer.Replace(content)
}
