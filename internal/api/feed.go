package api

import (
	"log/slog"
	"net/http"

	"github.com/spidyshivam/webhook-repo/internal/display"
)

// FeedLimit caps the number of events served to the dashboard.
const FeedLimit = 20

type FeedHandler struct {
	store  EventStore
	logger *slog.Logger
}

func NewFeedHandler(s EventStore, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{store: s, logger: logger}
}

// List returns the most recent events as display sentences, newest first.
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.RecentEvents(r.Context(), FeedLimit)
	if err != nil {
		h.logger.Error("failed to fetch events", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to retrieve events")
		return
	}

	respondJSON(w, http.StatusOK, display.Feed(events))
}
