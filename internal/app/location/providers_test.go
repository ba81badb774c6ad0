package location

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/pkg/httpclient"
)

func TestIPAPIClient(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		switch r.URL.Path {
		case "/8.8.8.8/json/":
			_, _ = w.Write([]byte(`{"country_code":"JO","country_name":"Jordan"}`))
		case "/json/":
			_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewIPAPIClient(srv.URL+"/", httpclient.New(time.Second))

	t.Run("explicit ip", func(t *testing.T) {
		det, err := c.LookupIP(context.Background(), "8.8.8.8")
		require.NoError(t, err)
		assert.Equal(t, "/8.8.8.8/json/", gotPath)
		assert.Equal(t, Detection{CountryCode: "JO", CountryName: "Jordan"}, det)
	})

	t.Run("error payload", func(t *testing.T) {
		_, err := c.LookupIP(context.Background(), "")
		assert.ErrorIs(t, err, ErrNoCountry)
	})
}

func TestBigDataCloudClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "30.0444" || q.Get("longitude") != "31.2357" || q.Get("localityLanguage") != "en" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"countryCode":"EG","countryName":"Egypt"}`))
	}))
	defer srv.Close()

	c := NewBigDataCloudClient(srv.URL, httpclient.New(time.Second))
	det, err := c.ReverseGeocode(context.Background(), Coordinates{Latitude: 30.0444, Longitude: 31.2357})
	require.NoError(t, err)
	assert.Equal(t, "EG", det.CountryCode)

	t.Run("non-2xx is a status error", func(t *testing.T) {
		_, err := c.ReverseGeocode(context.Background(), Coordinates{})
		var se *httpclient.StatusError
		assert.True(t, errors.As(err, &se))
	})
}
