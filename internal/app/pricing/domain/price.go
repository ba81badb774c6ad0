package domain

import (
	"fmt"
	"strings"
	"time"
)

// PriceType is the pricing tier of a price record.
type PriceType string

const (
	PriceNormal  PriceType = "NORMAL"
	PriceMedical PriceType = "MEDICAL"
)

// ParsePriceType accepts "normal"/"NORMAL" and "medical"/"MEDICAL". An empty string means NORMAL.
func ParsePriceType(s string) (PriceType, error) {
	switch PriceType(strings.ToUpper(strings.TrimSpace(s))) {
	case "", PriceNormal:
		return PriceNormal, nil
	case PriceMedical:
		return PriceMedical, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriceType, s)
	}
}

// PriceKey identifies the slot a price occupies on an entity.
type PriceKey struct {
	Currency Currency
	Type     PriceType
}

// Price is an immutable price record. Editing a price creates a new record and
// supersedes the previous one.
type Price struct {
	id        string
	currency  Currency
	priceType PriceType
	amount    *Money
	createdAt time.Time
}

// NewPrice validates and creates a price record for writing.
func NewPrice(id string, currency Currency, priceType PriceType, amount *Money, createdAt time.Time) (*Price, error) {
	if !currency.IsPricing() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	if priceType != PriceNormal && priceType != PriceMedical {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriceType, priceType)
	}
	if amount == nil || !amount.IsPositive() {
		return nil, ErrInvalidPrice
	}
	return &Price{
		id:        id,
		currency:  currency,
		priceType: priceType,
		amount:    amount.Copy(),
		createdAt: createdAt,
	}, nil
}

// ReconstructPrice loads a stored price without validation.
func ReconstructPrice(id string, currency Currency, priceType PriceType, amount *Money, createdAt time.Time) *Price {
	return &Price{id: id, currency: currency, priceType: priceType, amount: amount, createdAt: createdAt}
}

func (p *Price) ID() string           { return p.id }
func (p *Price) Currency() Currency   { return p.currency }
func (p *Price) Type() PriceType      { return p.priceType }
func (p *Price) Amount() *Money       { return p.amount.Copy() }
func (p *Price) CreatedAt() time.Time { return p.createdAt }
func (p *Price) Key() PriceKey        { return PriceKey{Currency: p.currency, Type: p.priceType} }
