package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/quote_price"
)

// QuoteHandler serves storefront price quotes.
type QuoteHandler struct {
	quote     *quote_price.Query
	validator *validator.Validate
	logger    *zap.Logger
}

func NewQuoteHandler(quote *quote_price.Query, v *validator.Validate, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{quote: quote, validator: v, logger: logger}
}

type quoteParams struct {
	EntityID string `json:"id" validate:"required,max=64"`
	Currency string `json:"currency" validate:"required,len=3,alpha"`
	Type     string `json:"type" validate:"omitempty,oneof=NORMAL MEDICAL normal medical"`
	Coupon   string `json:"coupon" validate:"omitempty,max=64"`
}

// LoyaltyResponse is null when loyalty is disabled for the tier.
type LoyaltyResponse struct {
	PointsAwarded  int64 `json:"pointsAwarded"`
	PointsRequired int64 `json:"pointsRequired"`
}

type DisplayResponse struct {
	Base  string `json:"base"`
	Final string `json:"final"`
}

// QuoteResponse amounts are decimal strings with two places.
type QuoteResponse struct {
	EntityID        string           `json:"entityId"`
	Name            string           `json:"name"`
	Kind            string           `json:"kind"`
	Currency        string           `json:"currency"`
	Type            string           `json:"type"`
	Base            string           `json:"base"`
	EntityDiscount  string           `json:"entityDiscount"`
	CouponDiscount  string           `json:"couponDiscount"`
	TotalDiscount   string           `json:"totalDiscount"`
	Final           string           `json:"final"`
	DiscountPercent string           `json:"discountPercent"`
	CouponCode      string           `json:"couponCode,omitempty"`
	CouponPercent   string           `json:"couponPercent,omitempty"`
	Display         DisplayResponse  `json:"display"`
	Period          string           `json:"period,omitempty"`
	GiftPeriod      string           `json:"giftPeriod,omitempty"`
	Loyalty         *LoyaltyResponse `json:"loyalty"`
	Available       []string         `json:"availableCurrencies"`
}

// Quote handles GET /api/v1/entities/{id}/quote.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := quoteParams{
		EntityID: chi.URLParam(r, "id"),
		Currency: q.Get("currency"),
		Type:     q.Get("type"),
		Coupon:   q.Get("coupon"),
	}
	if err := h.validator.Struct(params); err != nil {
		writeValidationError(w, err)
		return
	}

	loc := requestLocale(r)
	resp, err := h.quote.Execute(r.Context(), &quote_price.Request{
		EntityID:   params.EntityID,
		Currency:   params.Currency,
		Type:       params.Type,
		CouponCode: params.Coupon,
		Locale:     loc,
	})
	if err != nil {
		writeDomainError(w, h.logger, loc, err)
		return
	}

	writeJSON(w, http.StatusOK, toQuoteResponse(resp))
}

func toQuoteResponse(q *quote_price.Response) QuoteResponse {
	out := QuoteResponse{
		EntityID:        q.EntityID,
		Name:            q.Name,
		Kind:            string(q.Kind),
		Currency:        string(q.Currency),
		Type:            string(q.Type),
		Base:            q.Breakdown.Base.String(),
		EntityDiscount:  q.Breakdown.EntityDiscount.String(),
		CouponDiscount:  q.Breakdown.CouponDiscount.String(),
		TotalDiscount:   q.Breakdown.TotalDiscount().String(),
		Final:           q.Breakdown.Final.String(),
		DiscountPercent: q.EntityDiscount.String(),
		CouponCode:      q.CouponCode,
		Display:         DisplayResponse{Base: q.FormattedBase, Final: q.FormattedFinal},
		Period:          q.Period,
		GiftPeriod:      q.GiftPeriod,
		Available:       currencyCodes(q.Available),
	}
	if q.CouponPercent != nil {
		out.CouponPercent = q.CouponPercent.String()
	}
	if q.Loyalty.Enabled() {
		out.Loyalty = &LoyaltyResponse{
			PointsAwarded:  derefOrZero(q.Loyalty.PointsAwarded()),
			PointsRequired: derefOrZero(q.Loyalty.PointsRequired()),
		}
	}
	return out
}

func currencyCodes(cs []domain.Currency) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

func derefOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
