package templates

import (
	"html"
	"strings"
)

// EscapeHTML escapes special characters for Telegram HTML format.
// Telegram only honors <, >, & and quotes; html.EscapeString covers them all.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// SafeText sanitizes text for safe embedding in Telegram HTML messages:
// 1. Removes invalid UTF-8 sequences
// 2. Escapes HTML-special characters
func SafeText(text string) string {
	text = strings.ToValidUTF8(text, "")
	return EscapeHTML(text)
}
