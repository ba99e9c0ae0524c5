package telegram

import (
	"context"
)

// Parse modes supported by the Telegram send API
const (
	ParseModeHTML       = "HTML"
	ParseModeMarkdown   = "Markdown"
	ParseModeMarkdownV2 = "MarkdownV2"
)

// Bot interface abstracts telegram bot operations (for dependency injection)
type Bot interface {
	// SendMessage sends a text message to a chat (blocking)
	SendMessage(ctx context.Context, chatID int64, text string, opts MessageOptions) error

	// Close releases the underlying network session.
	// Called exactly once at process shutdown; no sends may follow it.
	Close()
}

// MessageOptions defines options for sending messages
type MessageOptions struct {
	// ParseMode (Markdown, HTML, MarkdownV2)
	ParseMode string

	// DisableWebPagePreview disables link previews
	DisableWebPagePreview bool

	// DisableNotification sends message silently
	DisableNotification bool
}
