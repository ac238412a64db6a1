package status

import (
	"fmt"
)

// FileFormatter defines how file outcomes and summaries should be formatted
type FileFormatter interface {
	// FormatFileOperation formats the outcome of a single file
	FormatFileOperation(path string, status FileStatus, replacements int) string

	// FormatSummary formats the counts of a finished run
	FormatSummary(s Summary) string

	// FormatError formats a file error
	FormatError(path string, err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFileOperation(path string, status FileStatus, replacements int) string {
	switch status {
	case StatusRewritten:
		return fmt.Sprintf("📝 Rewrote %s (%s)", path, plural(replacements, "replacement"))
	case StatusWouldRewrite:
		return fmt.Sprintf("🔎 Would rewrite %s (%s)", path, plural(replacements, "replacement"))
	case StatusFailed:
		return fmt.Sprintf("❌ Failed %s", path)
	default:
		return fmt.Sprintf("👍 Unchanged %s", path)
	}
}

// FormatSummary formats the run totals
func (f *DefaultFileFormatter) FormatSummary(s Summary) string {
	prefix := "✅"
	if s.Failed > 0 {
		prefix = "❌"
	}
	return fmt.Sprintf("%s Processed %s: %d rewritten, %d would rewrite, %d unchanged, %d failed (%s)",
		prefix, plural(s.Total, "file"), s.Rewritten, s.WouldRewrite, s.Unchanged, s.Failed, plural(s.Replacements, "replacement"))
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(path string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %s: %v", path, err)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
