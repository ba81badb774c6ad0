package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pricing"

// Metrics holds the service collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	LocationResolutions *prometheus.CounterVec
	ExchangeRefreshes   *prometheus.CounterVec
	Quotes              *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LocationResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_resolutions_total",
			Help:      "Location resolutions by source (cache, ip, geolocation, manual, default).",
		}, []string{"source"}),
		ExchangeRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_refreshes_total",
			Help:      "Exchange rate refresh attempts by result.",
		}, []string{"result"}),
		Quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Price quotes by currency and outcome.",
		}, []string{"currency", "outcome"}),
	}
	m.registry.MustRegister(m.LocationResolutions, m.ExchangeRefreshes, m.Quotes)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLocation counts a location resolution.
func (m *Metrics) ObserveLocation(source string) {
	if m == nil {
		return
	}
	m.LocationResolutions.WithLabelValues(source).Inc()
}

// ObserveExchangeRefresh counts an exchange-rate refresh attempt.
func (m *Metrics) ObserveExchangeRefresh(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.ExchangeRefreshes.WithLabelValues(result).Inc()
}

// ObserveQuote counts a price quote.
func (m *Metrics) ObserveQuote(currency, outcome string) {
	if m == nil {
		return
	}
	m.Quotes.WithLabelValues(currency, outcome).Inc()
}
