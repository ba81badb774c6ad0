package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

// ErrorBody is the envelope of every non-2xx response.
type ErrorBody struct {
	Error ErrorMessage `json:"error"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

var priceUnavailable = map[locale.Locale]string{
	locale.English: "Price not available",
	locale.Arabic:  "السعر غير متاح",
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorBody{Error: ErrorMessage{Message: message}})
}

// writeValidationError reports the first failing field by its JSON name.
func writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: failed %q validation", fe.Field(), fe.Tag()))
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

// writeDomainError maps domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, logger *zap.Logger, loc locale.Locale, err error) {
	switch {
	case errors.Is(err, domain.ErrPriceUnavailable):
		msg, ok := priceUnavailable[loc]
		if !ok {
			msg = priceUnavailable[locale.English]
		}
		writeError(w, http.StatusNotFound, msg)

	case errors.Is(err, domain.ErrEntityNotFound):
		writeError(w, http.StatusNotFound, "entity not found")

	case errors.Is(err, domain.ErrCouponNotFound):
		writeError(w, http.StatusNotFound, "coupon not found")

	case errors.Is(err, domain.ErrCouponInactive),
		errors.Is(err, domain.ErrCouponExpired):
		writeError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrInvalidPriceType),
		errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, err.Error())

	default:
		logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
