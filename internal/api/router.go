package api

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spidyshivam/webhook-repo/internal/ratelimit"
	"github.com/spidyshivam/webhook-repo/internal/webhook"
	ws "github.com/spidyshivam/webhook-repo/internal/websocket"
)

// Deps are the components the router wires into its handlers.
type Deps struct {
	Store      EventStore
	Verifier   *webhook.Verifier
	Normalizer *webhook.Normalizer
	Limiter    ratelimit.Limiter
	Hub        *ws.Hub
	// Static serves the dashboard page at / when set.
	Static fs.FS
	// TrustProxyHeaders rewrites RemoteAddr from X-Forwarded-For and
	// X-Real-IP. Without it those headers cannot change the rate limit key.
	TrustProxyHeaders bool
	Logger            *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(d Deps) http.Handler {
	if d.Limiter == nil {
		d.Limiter = ratelimit.Unlimited{}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if d.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(corsMiddleware)

	webhookHandler := NewWebhookHandler(d.Verifier, d.Normalizer, d.Store, d.Limiter, d.Hub, d.Logger)
	feedHandler := NewFeedHandler(d.Store, d.Logger)
	dashHandler := NewDashboardHandler(d.Store, d.Hub, d.Logger)

	r.Get("/health", HealthHandler())

	r.Route("/webhook", func(r chi.Router) {
		r.Post("/receiver", webhookHandler.Receive)
		r.Get("/events", feedHandler.List)
		r.Get("/stats", dashHandler.Stats)
		r.Get("/ws", d.Hub.HandleWebSocket)
	})

	if d.Static != nil {
		r.Handle("/*", http.FileServer(http.FS(d.Static)))
	}

	return r
}

// corsMiddleware lets a dashboard served from another origin poll the feed.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+webhook.SignatureHeader+", "+webhook.EventHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
