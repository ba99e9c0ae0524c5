package health

import (
	"encoding/json"
	"net/http"
	"time"

	"tradenotify/pkg/logger"
)

// Handler provides the health check endpoint
type Handler struct {
	log         *logger.Logger
	startTime   time.Time
	serviceName string
}

// New creates a new health check handler
func New(log *logger.Logger, serviceName string) *Handler {
	return &Handler{
		log:         log,
		startTime:   time.Now(),
		serviceName: serviceName,
	}
}

// Status is the health check response body
type Status struct {
	Status string `json:"status"`
}

// HandleHealth reports that the service is up.
// It does not probe the Telegram session: the notifier has no recovery
// path, so a broken session surfaces on sends, not here.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Status{Status: "OK"})
}
