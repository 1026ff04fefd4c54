package api

import (
	"log/slog"
	"net/http"

	"github.com/spidyshivam/webhook-repo/internal/store"
)

type DashboardHandler struct {
	store  EventStore
	feed   Broadcaster
	logger *slog.Logger
}

func NewDashboardHandler(s EventStore, feed Broadcaster, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{store: s, feed: feed, logger: logger}
}

// Stats returns per-action event totals and the number of live feed clients.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.EventStats(r.Context())
	if err != nil {
		h.logger.Error("failed to get event stats", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	type statsResponse struct {
		store.EventStats
		LiveClients int `json:"live_clients"`
	}

	respondJSON(w, http.StatusOK, statsResponse{
		EventStats:  *stats,
		LiveClients: h.feed.ClientCount(),
	})
}
