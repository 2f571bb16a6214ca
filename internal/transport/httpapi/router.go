// Package httpapi is the transport boundary: the chi routes, the bearer
// check, the response envelope, and the MCP tool mount all live here.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/jryan2014/car-audio-events/internal/bootstrap/logging"
	usecaseevents "github.com/jryan2014/car-audio-events/internal/usecase/events"
)

// NewRouter builds the full HTTP surface. Root, health and the event
// listing are deliberately unauthenticated; everything else, including
// the MCP mount, requires the bearer token.
func NewRouter(svc *usecaseevents.Service, apiToken string) http.Handler {
	h := &handlers{svc: svc, now: time.Now}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(requestLog)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Get("/api/events", h.listEvents)

	r.Group(func(pr chi.Router) {
		pr.Use(requireBearer(apiToken))

		pr.Post("/api/events", h.createEvent)
		pr.Get("/api/events/{eventID}", h.getEvent)
		pr.Post("/api/registrations", h.registerCompetitor)
		pr.Get("/api/registrations", h.listRegistrations)
		pr.Post("/api/analytics", h.analytics)
		pr.Post("/api/payments", h.recordPayment)
		pr.Post("/api/support", h.createSupportTicket)

		pr.Handle("/mcp", newMCPHandler(svc))
	})

	return r
}

// requestLog scopes the context logger to the request and writes one
// line per request.
func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithAttrs(r.Context(),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.Info(ctx, "request handled",
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
