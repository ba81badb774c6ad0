package location

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/light-bringer/pricing-service/internal/pkg/httpclient"
)

// ErrNoCountry is returned when a provider answered without a usable country code.
var ErrNoCountry = errors.New("provider returned no country")

// Coordinates are a browser-supplied position. A nil *Coordinates means the visitor
// denied the geolocation permission.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Detection is the raw answer of a provider.
type Detection struct {
	CountryCode string
	CountryName string
}

// IPLookup detects a country from an IP address. An empty ip means the caller's own address.
type IPLookup interface {
	LookupIP(ctx context.Context, ip string) (Detection, error)
}

// ReverseGeocoder detects a country from coordinates.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, c Coordinates) (Detection, error)
}

// IPAPIClient talks to ipapi.co.
type IPAPIClient struct {
	baseURL string
	http    *httpclient.Client
}

func NewIPAPIClient(baseURL string, http *httpclient.Client) *IPAPIClient {
	return &IPAPIClient{baseURL: strings.TrimRight(baseURL, "/"), http: http}
}

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

func (c *IPAPIClient) LookupIP(ctx context.Context, ip string) (Detection, error) {
	target := c.baseURL + "/json/"
	if ip != "" {
		target = c.baseURL + "/" + url.PathEscape(ip) + "/json/"
	}

	var resp ipapiResponse
	if err := c.http.GetJSON(ctx, target, &resp); err != nil {
		return Detection{}, fmt.Errorf("ip lookup: %w", err)
	}
	if resp.Error {
		return Detection{}, fmt.Errorf("ip lookup: %w: %s", ErrNoCountry, resp.Reason)
	}
	if resp.CountryCode == "" {
		return Detection{}, fmt.Errorf("ip lookup: %w", ErrNoCountry)
	}
	return Detection{CountryCode: resp.CountryCode, CountryName: resp.CountryName}, nil
}

// BigDataCloudClient talks to the BigDataCloud client-side reverse geocoding API.
type BigDataCloudClient struct {
	baseURL string
	http    *httpclient.Client
}

func NewBigDataCloudClient(baseURL string, http *httpclient.Client) *BigDataCloudClient {
	return &BigDataCloudClient{baseURL: baseURL, http: http}
}

type reverseGeocodeResponse struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

func (c *BigDataCloudClient) ReverseGeocode(ctx context.Context, coords Coordinates) (Detection, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	q.Set("localityLanguage", "en")

	var resp reverseGeocodeResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+q.Encode(), &resp); err != nil {
		return Detection{}, fmt.Errorf("reverse geocode: %w", err)
	}
	if resp.CountryCode == "" {
		return Detection{}, fmt.Errorf("reverse geocode: %w", ErrNoCountry)
	}
	return Detection{CountryCode: resp.CountryCode, CountryName: resp.CountryName}, nil
}
