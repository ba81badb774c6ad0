package http

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/exchange"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/amount"
)

const rateDecimals = 8

// ExchangeHandler exposes the X->USD rates used by the admin revenue view.
type ExchangeHandler struct {
	service   *exchange.Service
	validator *validator.Validate
	logger    *zap.Logger
}

func NewExchangeHandler(service *exchange.Service, v *validator.Validate, logger *zap.Logger) *ExchangeHandler {
	return &ExchangeHandler{service: service, validator: v, logger: logger}
}

// RatesResponse lists X->USD rates. UpdatedAt is omitted when only approximations are known.
type RatesResponse struct {
	Base      string            `json:"base"`
	Rates     map[string]string `json:"rates"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
	FetchedAt time.Time         `json:"fetchedAt"`
	Source    string            `json:"source"`
	Stale     bool              `json:"stale"`
}

type convertParams struct {
	Amount   string `json:"amount" validate:"required,numeric"`
	Currency string `json:"currency" validate:"required,len=3,alpha"`
}

// ConvertResponse carries the dollar value and the rate snapshot it was computed with.
type ConvertResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	USD      string `json:"usd"`
	Rate     string `json:"rate"`
	Stale    bool   `json:"stale"`
}

// Rates handles GET /api/v1/exchange-rates.
func (h *ExchangeHandler) Rates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRatesResponse(h.service.Rates(r.Context())))
}

// Refresh handles POST /api/v1/exchange-rates/refresh.
func (h *ExchangeHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRatesResponse(h.service.Refresh(r.Context())))
}

// Convert handles GET /api/v1/exchange-rates/convert?amount=&currency=.
func (h *ExchangeHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := convertParams{Amount: q.Get("amount"), Currency: q.Get("currency")}
	if err := h.validator.Struct(params); err != nil {
		writeValidationError(w, err)
		return
	}

	value, err := amount.ParseString(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount: "+err.Error())
		return
	}
	currency, err := domain.ParseCurrency(params.Currency)
	if err != nil {
		writeDomainError(w, h.logger, requestLocale(r), err)
		return
	}

	money := domain.NewMoneyFromRat(value)
	usd, snap, err := h.service.ToUSD(r.Context(), money, currency)
	if errors.Is(err, exchange.ErrUnknownRate) {
		writeError(w, http.StatusNotFound, "no exchange rate for "+string(currency))
		return
	}
	if err != nil {
		writeDomainError(w, h.logger, requestLocale(r), err)
		return
	}

	rate, _ := snap.Rate(currency)
	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount:   money.String(),
		Currency: string(currency),
		USD:      usd.String(),
		Rate:     rate.FloatString(rateDecimals),
		Stale:    snap.Stale,
	})
}

func toRatesResponse(s exchange.Snapshot) RatesResponse {
	out := RatesResponse{
		Base:      string(domain.USD),
		Rates:     make(map[string]string, len(s.ToUSD)),
		FetchedAt: s.FetchedAt,
		Source:    string(s.Source),
		Stale:     s.Stale,
	}
	codes := make([]string, 0, len(s.ToUSD))
	for c := range s.ToUSD {
		codes = append(codes, string(c))
	}
	sort.Strings(codes)
	for _, c := range codes {
		out.Rates[c] = s.ToUSD[domain.Currency(c)].FloatString(rateDecimals)
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
