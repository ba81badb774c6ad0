package quote_price

import (
	"context"
	"errors"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/locale"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
	"github.com/light-bringer/pricing-service/internal/pkg/period"
)

// Request asks what an entity costs in a currency and tier, optionally with a coupon.
type Request struct {
	EntityID   string
	Currency   string
	Type       string
	CouponCode string
	Locale     locale.Locale
}

// Response is the display-ready quote.
type Response struct {
	EntityID       string
	Name           string
	Kind           domain.EntityKind
	Currency       domain.Currency
	Type           domain.PriceType
	Breakdown      *domain.Breakdown
	EntityDiscount domain.Percentage
	CouponCode     string
	CouponPercent  *domain.Percentage
	FormattedBase  string
	FormattedFinal string
	Period         string
	GiftPeriod     string
	Loyalty        domain.LoyaltyConfig
	// Currencies the tier can be bought in, for the currency switcher.
	Available []domain.Currency
}

// Query handles price quotes.
type Query struct {
	entities   contracts.EntityRepository
	coupons    contracts.CouponRepository
	clock      clock.Clock
	metrics    *metrics.Metrics
	resolver   *domain.PriceResolver
	calculator *domain.PricingCalculator
}

func NewQuery(entities contracts.EntityRepository, coupons contracts.CouponRepository, clock clock.Clock, m *metrics.Metrics) *Query {
	return &Query{
		entities:   entities,
		coupons:    coupons,
		clock:      clock,
		metrics:    m,
		resolver:   domain.NewPriceResolver(),
		calculator: domain.NewPricingCalculator(),
	}
}

func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := q.quote(ctx, req)
	label := "other"
	if c, perr := domain.ParsePricingCurrency(req.Currency); perr == nil {
		label = string(c)
	}
	switch {
	case err == nil:
		q.metrics.ObserveQuote(label, "ok")
	case errors.Is(err, domain.ErrPriceUnavailable):
		q.metrics.ObserveQuote(label, "unavailable")
	default:
		q.metrics.ObserveQuote(label, "error")
	}
	return resp, err
}

func (q *Query) quote(ctx context.Context, req *Request) (*Response, error) {
	currency, err := domain.ParsePricingCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	t, err := domain.ParsePriceType(req.Type)
	if err != nil {
		return nil, err
	}

	entity, err := q.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return nil, err
	}

	base, err := q.resolver.Resolve(entity, currency, t)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		EntityID:       entity.ID(),
		Name:           entity.Name(),
		Kind:           entity.Kind(),
		Currency:       currency,
		Type:           t,
		EntityDiscount: entity.Discount(),
		Period:         period.Format(int(entity.DurationDays()), req.Locale),
		GiftPeriod:     period.FormatGift(int(entity.GiftDays()), req.Locale),
		Loyalty:        entity.Loyalty(t),
		Available:      q.resolver.Available(entity, t),
	}
	if entity.Kind() == domain.KindProduct {
		resp.Period = ""
	}

	if req.CouponCode != "" {
		coupon, err := q.coupons.GetByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		if err := coupon.Redeemable(q.clock.Now()); err != nil {
			return nil, err
		}
		pct := coupon.Percentage()
		resp.CouponPercent = &pct
		resp.CouponCode = coupon.Code()
	}

	resp.Breakdown = q.calculator.Apply(base, entity.Discount(), resp.CouponPercent).Rounded()
	resp.FormattedBase = domain.FormatAmount(resp.Breakdown.Base, currency, req.Locale)
	resp.FormattedFinal = domain.FormatAmount(resp.Breakdown.Final, currency, req.Locale)
	return resp, nil
}
