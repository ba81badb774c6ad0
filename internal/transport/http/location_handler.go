package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/location"
)

// LocationHandler serves visitor country detection.
type LocationHandler struct {
	resolver  *location.Resolver
	validator *validator.Validate
	logger    *zap.Logger
}

func NewLocationHandler(resolver *location.Resolver, v *validator.Validate, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{resolver: resolver, validator: v, logger: logger}
}

type resolveParams struct {
	Key string   `json:"key" validate:"omitempty,max=128"`
	Lat *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
}

// ManualLocationRequest is the body of POST /api/v1/location.
type ManualLocationRequest struct {
	Key     string `json:"key" validate:"required,max=128"`
	Country string `json:"country" validate:"required,len=2,alpha"`
}

// Resolve handles GET /api/v1/location. Detection failures still answer 200 with the fallback.
func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := resolveParams{Key: q.Get("key")}
	if params.Key == "" {
		params.Key = r.Header.Get(visitorKeyHeader)
	}

	var err error
	if params.Lat, err = optionalFloat(q.Get("lat")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat: not a number")
		return
	}
	if params.Lng, err = optionalFloat(q.Get("lng")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid lng: not a number")
		return
	}
	if (params.Lat == nil) != (params.Lng == nil) {
		writeError(w, http.StatusBadRequest, "lat and lng must be given together")
		return
	}
	if err := h.validator.Struct(params); err != nil {
		writeValidationError(w, err)
		return
	}

	req := location.Request{
		Key:      params.Key,
		ClientIP: clientIP(r),
		Locale:   requestLocale(r),
	}
	if params.Lat != nil {
		req.Coordinates = &location.Coordinates{Latitude: *params.Lat, Longitude: *params.Lng}
	}

	writeJSON(w, http.StatusOK, h.resolver.Resolve(r.Context(), req))
}

// SetManually handles POST /api/v1/location.
func (h *LocationHandler) SetManually(w http.ResponseWriter, r *http.Request) {
	var body ManualLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(body); err != nil {
		writeValidationError(w, err)
		return
	}

	res, err := h.resolver.SetManually(r.Context(), body.Key, body.Country, requestLocale(r))
	if errors.Is(err, location.ErrEmptyKey) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to store manual location", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
