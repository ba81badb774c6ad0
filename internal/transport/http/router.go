// Package http is the storefront JSON surface: location detection, price quotes,
// exchange rates and display helpers.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

// Handlers groups the route handlers. A nil handler leaves its routes unregistered.
type Handlers struct {
	Location *LocationHandler
	Quote    *QuoteHandler
	Exchange *ExchangeHandler
	Catalog  *CatalogHandler
	Events   *EventsHandler
}

// NewRouter builds the storefront router.
func NewRouter(h Handlers, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		if h.Location != nil {
			r.Get("/location", h.Location.Resolve)
			r.Post("/location", h.Location.SetManually)
		}
		if h.Quote != nil {
			r.Get("/entities/{id}/quote", h.Quote.Quote)
		}
		if h.Exchange != nil {
			r.Route("/exchange-rates", func(r chi.Router) {
				r.Get("/", h.Exchange.Rates)
				r.Post("/refresh", h.Exchange.Refresh)
				r.Get("/convert", h.Exchange.Convert)
			})
		}
		if h.Catalog != nil {
			r.Get("/currencies", h.Catalog.Currencies)
			r.Get("/period", h.Catalog.Period)
		}
		if h.Events != nil {
			r.Get("/events", h.Events.List)
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return otelhttp.NewHandler(r, "storefront")
}
