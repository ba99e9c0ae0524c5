package telegram

import (
	"context"
	"strings"
	"time"

	"tradenotify/internal/domain/trade"
	"tradenotify/internal/metrics"
	"tradenotify/pkg/errors"
	"tradenotify/pkg/logger"
	"tradenotify/pkg/telegram"
	"tradenotify/pkg/templates"
)

const tradeExecutionTemplate = "notifications/trade_execution"

// Renderer resolves message templates by ID (satisfied by templates.Registry)
type Renderer interface {
	Render(id string, data any) (string, error)
}

// NotificationService sends structured notifications to the configured chat.
// It holds the only reference handlers need: the Bot session is safe for
// concurrent use and the chat ID never changes after startup.
type NotificationService struct {
	bot       telegram.Bot
	templates Renderer
	chatID    int64
	log       *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	bot telegram.Bot,
	renderer Renderer,
	chatID int64,
	log *logger.Logger,
) *NotificationService {
	return &NotificationService{
		bot:       bot,
		templates: renderer,
		chatID:    chatID,
		log:       log.With("component", "telegram_notifications"),
	}
}

// SendText forwards a free-text message.
// The body is HTML-escaped before transmission so user input cannot
// inject markup into the chat.
func (ns *NotificationService) SendText(ctx context.Context, message string) error {
	return ns.send(ctx, "text", templates.SafeText(message))
}

// SendTradeExecution formats a validated trade record and forwards it
func (ns *NotificationService) SendTradeExecution(ctx context.Context, rec *trade.Record) error {
	text, err := ns.templates.Render(tradeExecutionTemplate, newTradeMessageData(rec))
	if err != nil {
		ns.log.Errorw("Failed to render trade_execution template", "error", err)
		return errors.Wrap(err, "render trade execution message")
	}

	return ns.send(ctx, "trade_execution", strings.TrimSpace(text))
}

func (ns *NotificationService) send(ctx context.Context, kind, text string) error {
	start := time.Now()

	err := ns.bot.SendMessage(ctx, ns.chatID, text, telegram.MessageOptions{
		ParseMode: telegram.ParseModeHTML,
	})
	metrics.RecordNotification(kind, time.Since(start), err)

	if err != nil {
		ns.log.Errorw("Failed to send notification", "kind", kind, "error", err)
		return err
	}

	ns.log.Infow("Notification sent", "kind", kind)
	return nil
}
