package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveLocation("cache")
	m.ObserveLocation("cache")
	m.ObserveLocation("default")
	m.ObserveExchangeRefresh(false)
	m.ObserveQuote("EGP", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LocationResolutions.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LocationResolutions.WithLabelValues("default")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExchangeRefreshes.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Quotes.WithLabelValues("EGP", "ok")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLocation("ip")
		m.ObserveExchangeRefresh(true)
		m.ObserveQuote("SAR", "unavailable")
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveQuote("AED", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "pricing_quotes_total"))
}
