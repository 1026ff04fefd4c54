package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"

	"github.com/google/uuid"

	"github.com/spidyshivam/webhook-repo/internal/display"
	"github.com/spidyshivam/webhook-repo/internal/domain"
	"github.com/spidyshivam/webhook-repo/internal/ratelimit"
	"github.com/spidyshivam/webhook-repo/internal/store"
	"github.com/spidyshivam/webhook-repo/internal/webhook"
	ws "github.com/spidyshivam/webhook-repo/internal/websocket"
)

const (
	deliveryHeader = "X-GitHub-Delivery"

	// GitHub caps webhook payloads at 25 MB.
	maxPayloadBytes = 25 << 20
)

// EventStore is the persistence the handlers need.
type EventStore interface {
	InsertEvent(ctx context.Context, ev domain.CanonicalEvent) (string, error)
	RecentEvents(ctx context.Context, limit int) ([]domain.StoredEvent, error)
	EventStats(ctx context.Context) (*store.EventStats, error)
}

// Broadcaster pushes stored events to live clients.
type Broadcaster interface {
	Broadcast(event ws.FeedEvent)
	ClientCount() int
}

type WebhookHandler struct {
	verifier   *webhook.Verifier
	normalizer *webhook.Normalizer
	store      EventStore
	limiter    ratelimit.Limiter
	feed       Broadcaster
	logger     *slog.Logger
}

func NewWebhookHandler(v *webhook.Verifier, n *webhook.Normalizer, s EventStore, l ratelimit.Limiter, feed Broadcaster, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:   v,
		normalizer: n,
		store:      s,
		limiter:    l,
		feed:       feed,
		logger:     logger,
	}
}

// Receive authenticates, normalizes and stores one webhook delivery.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventType := r.Header.Get(webhook.EventHeader)

	logger := h.logger.With("event_type", eventType)
	if id, err := uuid.Parse(r.Header.Get(deliveryHeader)); err == nil {
		logger = logger.With("delivery_id", id.String())
	}

	if !h.limiter.Allow(ctx, senderKey(r)) {
		logger.Warn("webhook rate limited", "sender", senderKey(r))
		respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if err := h.verifier.Verify(body, r.Header.Get(webhook.SignatureHeader)); err != nil {
		logger.Warn("webhook signature verification failed", "error", err)
		respondError(w, http.StatusForbidden, "request signature mismatch")
		return
	}

	res, err := h.normalizer.Normalize(eventType, body)
	if err != nil {
		logger.Error("failed to process webhook", "error", err)
		respondError(w, http.StatusBadRequest, "malformed webhook payload")
		return
	}

	switch res.Outcome {
	case webhook.OutcomePing:
		logger.Info("received ping")
		respondStatus(w, http.StatusOK, statusSuccess, res.Message)
		return
	case webhook.OutcomeIgnored:
		logger.Info("webhook ignored", "reason", res.Message)
		respondStatus(w, http.StatusOK, statusIgnored, res.Message)
		return
	}

	ev := *res.Event
	id, err := h.store.InsertEvent(ctx, ev)
	if err != nil {
		logger.Error("failed to store event", "error", err, "action", ev.Action)
		respondError(w, http.StatusInternalServerError, "failed to store event")
		return
	}

	logger.Info("stored event",
		"id", id,
		"action", ev.Action,
		"author", ev.Author,
		"request_id", ev.RequestID,
	)

	h.feed.Broadcast(ws.FeedEvent{
		ID:        id,
		Action:    string(ev.Action),
		Message:   display.Message(domain.StoredEvent{ID: id, CanonicalEvent: ev}),
		Timestamp: ev.Timestamp,
	})

	respondStatus(w, http.StatusOK, statusSuccess, "Webhook received and processed")
}

// senderKey identifies the caller for rate limiting. RemoteAddr carries a
// proxy-supplied address only when the router trusts proxy headers.
func senderKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
