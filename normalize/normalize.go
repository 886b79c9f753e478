// Package normalize strips extraction boilerplate from raw document text
// before it is measured or sent anywhere.
package normalize

import (
	"regexp"
	"strings"
)

var (
	// pageArtifact matches "Page" followed by whitespace and digits, the
	// page-number footers PDF extraction leaves behind. Case-sensitive.
	pageArtifact = regexp.MustCompile(`Page\s+\d+`)

	// whitespaceRun matches any run of whitespace, newlines included.
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Clean normalizes raw extracted text: page-number artifacts are removed,
// every whitespace run collapses to a single space, and the result is
// trimmed. Pure and idempotent; artifact removal runs before collapsing so
// the gaps it leaves are swallowed by the whitespace rule.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	// Removing an artifact can butt a stray "Page" against a later number,
	// so removal repeats until a fixpoint. Terminates: each pass shrinks
	// the text.
	for {
		next := pageArtifact.ReplaceAllString(text, " ")
		if next == text {
			break
		}
		text = next
	}
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
