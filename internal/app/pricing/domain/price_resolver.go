package domain

import "fmt"

// PriceResolver picks the amount an entity costs in a currency and tier.
// There is no cross-currency conversion and MEDICAL never falls back to NORMAL.
type PriceResolver struct{}

func NewPriceResolver() *PriceResolver {
	return &PriceResolver{}
}

// Resolve returns the current amount or ErrPriceUnavailable.
func (r *PriceResolver) Resolve(e *PricedEntity, currency Currency, t PriceType) (*Money, error) {
	p, ok := e.Price(currency, t)
	if !ok || !p.amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s has no %s price in %s", ErrPriceUnavailable, e.ID(), t, currency)
	}
	return p.Amount(), nil
}

// Available lists the currencies in which the tier can be bought, in registry order.
func (r *PriceResolver) Available(e *PricedEntity, t PriceType) []Currency {
	var out []Currency
	for _, c := range PricingCurrencies() {
		if _, err := r.Resolve(e, c, t); err == nil {
			out = append(out, c)
		}
	}
	return out
}
