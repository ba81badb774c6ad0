package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/period"
)

// CatalogHandler serves static display data: the currency registry and period strings.
type CatalogHandler struct {
	validator *validator.Validate
}

func NewCatalogHandler(v *validator.Validate) *CatalogHandler {
	return &CatalogHandler{validator: v}
}

type CurrencyResponse struct {
	Code    string `json:"code"`
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Pricing bool   `json:"pricing"`
}

type periodParams struct {
	Days int `json:"days" validate:"gte=0,lte=36500"`
	Gift int `json:"gift" validate:"gte=0,lte=36500"`
}

type PeriodResponse struct {
	Period string `json:"period"`
	Gift   string `json:"gift,omitempty"`
}

// Currencies handles GET /api/v1/currencies. ?pricing=true limits the list to pricing currencies.
func (h *CatalogHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)
	list := domain.AllCurrencies()
	if r.URL.Query().Get("pricing") == "true" {
		list = domain.PricingCurrencies()
	}

	out := make([]CurrencyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CurrencyResponse{
			Code:    string(c),
			Symbol:  c.Symbol(loc),
			Name:    c.Name(loc),
			Pricing: c.IsPricing(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Period handles GET /api/v1/period?days=&gift=.
func (h *CatalogHandler) Period(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var params periodParams
	var err error
	if params.Days, err = strconv.Atoi(q.Get("days")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid days: not an integer")
		return
	}
	if g := q.Get("gift"); g != "" {
		if params.Gift, err = strconv.Atoi(g); err != nil {
			writeError(w, http.StatusBadRequest, "invalid gift: not an integer")
			return
		}
	}
	if err := h.validator.Struct(params); err != nil {
		writeValidationError(w, err)
		return
	}

	loc := requestLocale(r)
	writeJSON(w, http.StatusOK, PeriodResponse{
		Period: period.Format(params.Days, loc),
		Gift:   period.FormatGift(params.Gift, loc),
	})
}
