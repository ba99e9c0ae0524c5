package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"tradenotify/internal/domain/trade"
	"tradenotify/pkg/errors"
	"tradenotify/pkg/logger"
)

// Notifier abstracts the outbound notification service (for testing with fakes)
type Notifier interface {
	SendText(ctx context.Context, message string) error
	SendTradeExecution(ctx context.Context, rec *trade.Record) error
}

// Handler serves the two send endpoints
type Handler struct {
	notifier Notifier
	log      *logger.Logger
}

// New creates a new notify handler
func New(notifier Notifier, log *logger.Logger) *Handler {
	return &Handler{
		notifier: notifier,
		log:      log.With("component", "notify_api"),
	}
}

type messageRequest struct {
	Message string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// HandleSendMessage forwards a free-text message to the configured chat
func (h *Handler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "field 'message': must not be empty")
		return
	}

	if err := h.notifier.SendText(r.Context(), req.Message); err != nil {
		h.log.Errorw("Failed to send custom message", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send message to Telegram")
		return
	}

	writeStatus(w, "Message sent")
}

// HandleTradeExecution validates a trade record and forwards the
// formatted notification to the configured chat
func (h *Handler) HandleTradeExecution(w http.ResponseWriter, r *http.Request) {
	var rec trade.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := rec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.notifier.SendTradeExecution(r.Context(), &rec); err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Errorw("Failed to send trade execution message", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to send trade execution message to Telegram")
		return
	}

	writeStatus(w, "Trade execution message sent")
}

func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(statusResponse{Status: status})
}

func writeError(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}
