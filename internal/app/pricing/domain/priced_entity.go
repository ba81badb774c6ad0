package domain

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

// Field names for change tracking
const (
	FieldName           = "name"
	FieldDuration       = "duration_days"
	FieldGiftDays       = "gift_days"
	FieldDiscount       = "discount_percent"
	FieldLoyaltyNormal  = "loyalty_normal"
	FieldLoyaltyMedical = "loyalty_medical"
	FieldUpdatedAt      = "updated_at"
)

// EntityKind is the kind of sellable thing an entity represents.
type EntityKind string

const (
	KindSubscriptionPlan EntityKind = "subscription_plan"
	KindProgramme        EntityKind = "programme"
	KindProduct          EntityKind = "product"
)

// ParseEntityKind validates a kind string.
func ParseEntityKind(s string) (EntityKind, error) {
	switch k := EntityKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindSubscriptionPlan, KindProgramme, KindProduct:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// PricedEntity is the aggregate root for anything sold with a price: subscription
// plans, programmes and products. It owns the current price per (currency, tier),
// the entity-level discount and the loyalty settings per tier.
type PricedEntity struct {
	id           string
	kind         EntityKind
	name         string
	durationDays int64
	giftDays     int64
	prices       map[PriceKey]*Price
	discount     Percentage
	loyalty      map[PriceType]LoyaltyConfig
	createdAt    time.Time
	updatedAt    time.Time

	clock   clock.Clock
	changes *ChangeTracker
	events  []DomainEvent

	// price records written or superseded since load
	newPrices        []*Price
	supersededPrices []*Price
}

// NewPricedEntity creates a new entity with no prices, 0% discount and loyalty disabled.
func NewPricedEntity(id string, kind EntityKind, name string, durationDays, giftDays int64, now time.Time, clk clock.Clock) (*PricedEntity, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if _, err := ParseEntityKind(string(kind)); err != nil {
		return nil, err
	}
	if durationDays < 0 || giftDays < 0 {
		return nil, ErrInvalidDuration
	}

	e := &PricedEntity{
		id:           id,
		kind:         kind,
		name:         name,
		durationDays: durationDays,
		giftDays:     giftDays,
		prices:       make(map[PriceKey]*Price),
		loyalty:      make(map[PriceType]LoyaltyConfig),
		createdAt:    now,
		updatedAt:    now,
		clock:        clk,
		changes:      NewChangeTracker(),
	}

	e.changes.MarkDirty(FieldName)
	e.changes.MarkDirty(FieldDuration)
	e.changes.MarkDirty(FieldGiftDays)
	e.changes.MarkDirty(FieldDiscount)

	e.recordEvent(&EntityCreatedEvent{
		EntityID:     id,
		Kind:         string(kind),
		Name:         name,
		DurationDays: durationDays,
		GiftDays:     giftDays,
		CreatedAt:    now,
	})

	return e, nil
}

// ReconstructPricedEntity rebuilds an entity from storage. prices holds only current
// (non-superseded) records.
func ReconstructPricedEntity(
	id string,
	kind EntityKind,
	name string,
	durationDays, giftDays int64,
	prices []*Price,
	discount Percentage,
	loyalty map[PriceType]LoyaltyConfig,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *PricedEntity {
	byKey := make(map[PriceKey]*Price, len(prices))
	for _, p := range prices {
		byKey[p.Key()] = p
	}
	l := make(map[PriceType]LoyaltyConfig, len(loyalty))
	for t, cfg := range loyalty {
		l[t] = cfg
	}
	return &PricedEntity{
		id:           id,
		kind:         kind,
		name:         name,
		durationDays: durationDays,
		giftDays:     giftDays,
		prices:       byKey,
		discount:     discount,
		loyalty:      l,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		clock:        clk,
		changes:      NewChangeTracker(),
	}
}

// Getters
func (e *PricedEntity) ID() string                  { return e.id }
func (e *PricedEntity) Kind() EntityKind            { return e.kind }
func (e *PricedEntity) Name() string                { return e.name }
func (e *PricedEntity) DurationDays() int64         { return e.durationDays }
func (e *PricedEntity) GiftDays() int64             { return e.giftDays }
func (e *PricedEntity) Discount() Percentage        { return e.discount }
func (e *PricedEntity) CreatedAt() time.Time        { return e.createdAt }
func (e *PricedEntity) UpdatedAt() time.Time        { return e.updatedAt }
func (e *PricedEntity) Changes() *ChangeTracker     { return e.changes }
func (e *PricedEntity) DomainEvents() []DomainEvent { return e.events }
func (e *PricedEntity) NewPrices() []*Price         { return e.newPrices }
func (e *PricedEntity) SupersededPrices() []*Price  { return e.supersededPrices }

// Price returns the current price for the slot, if any.
func (e *PricedEntity) Price(currency Currency, t PriceType) (*Price, bool) {
	p, ok := e.prices[PriceKey{Currency: currency, Type: t}]
	return p, ok
}

// Prices returns all current prices ordered by currency then tier.
func (e *PricedEntity) Prices() []*Price {
	out := make([]*Price, 0, len(e.prices))
	for _, p := range e.prices {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].currency != out[j].currency {
			return out[i].currency < out[j].currency
		}
		return out[i].priceType > out[j].priceType // NORMAL before MEDICAL
	})
	return out
}

// NormalPrices returns the NORMAL amount per currency.
func (e *PricedEntity) NormalPrices() map[Currency]*Money {
	out := make(map[Currency]*Money)
	for k, p := range e.prices {
		if k.Type == PriceNormal {
			out[k.Currency] = p.Amount()
		}
	}
	return out
}

// Loyalty returns the loyalty config for the tier; disabled when never set.
func (e *PricedEntity) Loyalty(t PriceType) LoyaltyConfig {
	return e.loyalty[t]
}

// SetName renames the entity.
func (e *PricedEntity) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if name == e.name {
		return nil
	}
	e.name = name
	e.changes.MarkDirty(FieldName)
	e.touch()
	return nil
}

// SetDuration updates the access period and the gift period in days.
func (e *PricedEntity) SetDuration(durationDays, giftDays int64) error {
	if durationDays < 0 || giftDays < 0 {
		return ErrInvalidDuration
	}
	if durationDays != e.durationDays {
		e.durationDays = durationDays
		e.changes.MarkDirty(FieldDuration)
		e.touch()
	}
	if giftDays != e.giftDays {
		e.giftDays = giftDays
		e.changes.MarkDirty(FieldGiftDays)
		e.touch()
	}
	return nil
}

// SetPrice writes a new price record for (currency, tier). The previous record for the
// slot, if any, is superseded. Writing the same amount again is a no-op that returns the
// current record.
func (e *PricedEntity) SetPrice(id string, currency Currency, t PriceType, amount *Money) (*Price, error) {
	now := e.clock.Now()
	p, err := NewPrice(id, currency, t, amount, now)
	if err != nil {
		return nil, err
	}
	if t == PriceMedical {
		if _, ok := e.Price(currency, PriceNormal); !ok {
			return nil, fmt.Errorf("%w: %s", ErrMedicalRequiresNormal, currency)
		}
	}

	if current, ok := e.prices[p.Key()]; ok {
		if current.amount.Equals(p.amount) {
			return current, nil
		}
		e.supersede(current, now)
	}

	e.prices[p.Key()] = p
	e.newPrices = append(e.newPrices, p)
	e.touch()

	e.recordEvent(&PriceSetEvent{
		EntityID: e.id,
		PriceID:  p.id,
		Currency: string(currency),
		Type:     string(t),
		Amount:   p.amount.String(),
		SetAt:    now,
	})
	return p, nil
}

// RemovePrice supersedes the current record without a replacement. A NORMAL price
// cannot be removed while a MEDICAL price exists in the same currency.
func (e *PricedEntity) RemovePrice(currency Currency, t PriceType) error {
	current, ok := e.Price(currency, t)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrPriceUnavailable, currency, t)
	}
	if t == PriceNormal {
		if _, hasMedical := e.Price(currency, PriceMedical); hasMedical {
			return fmt.Errorf("%w: remove the %s medical price first", ErrMedicalRequiresNormal, currency)
		}
	}
	e.supersede(current, e.clock.Now())
	delete(e.prices, current.Key())
	e.touch()
	return nil
}

// ApplyMedicalPrices stores the given amounts as MEDICAL prices in one step. All amounts
// are validated before anything is written.
func (e *PricedEntity) ApplyMedicalPrices(newID func() string, prices map[Currency]*Money, factorPercent *big.Rat) error {
	if len(prices) == 0 {
		return fmt.Errorf("%w: no medical prices to apply", ErrInvalidPrice)
	}
	currencies := make([]Currency, 0, len(prices))
	for c, amt := range prices {
		if !c.IsPricing() {
			return fmt.Errorf("%w: %s", ErrUnsupportedCurrency, c)
		}
		if amt == nil || !amt.IsPositive() {
			return fmt.Errorf("%w: %s", ErrInvalidPrice, c)
		}
		if _, ok := e.Price(c, PriceNormal); !ok {
			return fmt.Errorf("%w: %s", ErrMedicalRequiresNormal, c)
		}
		currencies = append(currencies, c)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })

	applied := make(map[string]string, len(prices))
	for _, c := range currencies {
		p, err := e.SetPrice(newID(), c, PriceMedical, prices[c])
		if err != nil {
			return err
		}
		applied[string(c)] = p.amount.String()
	}

	factor := "0"
	if factorPercent != nil {
		factor = factorPercent.FloatString(2)
	}
	e.recordEvent(&MedicalPricesAppliedEvent{
		EntityID:      e.id,
		FactorPercent: factor,
		Prices:        applied,
		AppliedAt:     e.clock.Now(),
	})
	return nil
}

// SetDiscount replaces the entity-level discount.
func (e *PricedEntity) SetDiscount(p Percentage) {
	if e.discount.Equals(p) {
		return
	}
	e.discount = p
	e.changes.MarkDirty(FieldDiscount)
	e.touch()
	e.recordEvent(&DiscountUpdatedEvent{
		EntityID:  e.id,
		Percent:   p.String(),
		UpdatedAt: e.clock.Now(),
	})
}

// SetLoyalty replaces the loyalty config of a tier. Use DisabledLoyalty to turn it off.
func (e *PricedEntity) SetLoyalty(t PriceType, cfg LoyaltyConfig) error {
	var field string
	switch t {
	case PriceNormal:
		field = FieldLoyaltyNormal
	case PriceMedical:
		field = FieldLoyaltyMedical
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPriceType, t)
	}

	e.loyalty[t] = cfg
	e.changes.MarkDirty(field)
	e.touch()
	e.recordEvent(&LoyaltyUpdatedEvent{
		EntityID:       e.id,
		Type:           string(t),
		PointsAwarded:  cfg.PointsAwarded(),
		PointsRequired: cfg.PointsRequired(),
		UpdatedAt:      e.clock.Now(),
	})
	return nil
}

// ClearEvents drops recorded events and pending price records after a commit attempt.
func (e *PricedEntity) ClearEvents() {
	e.events = nil
	e.newPrices = nil
	e.supersededPrices = nil
}

// supersede retires p. A record written earlier in the same unit of work is simply
// dropped together with its price.set event, since it was never stored.
func (e *PricedEntity) supersede(p *Price, at time.Time) {
	for i, pending := range e.newPrices {
		if pending == p {
			e.newPrices = append(e.newPrices[:i], e.newPrices[i+1:]...)
			e.dropPriceSet(p.id)
			return
		}
	}
	e.supersededPrices = append(e.supersededPrices, p)
	e.recordEvent(&PriceSupersededEvent{
		EntityID:     e.id,
		PriceID:      p.id,
		Currency:     string(p.currency),
		Type:         string(p.priceType),
		Amount:       p.amount.String(),
		SupersededAt: at,
	})
}

func (e *PricedEntity) dropPriceSet(priceID string) {
	kept := e.events[:0]
	for _, ev := range e.events {
		if set, ok := ev.(*PriceSetEvent); ok && set.PriceID == priceID {
			continue
		}
		kept = append(kept, ev)
	}
	e.events = kept
}

func (e *PricedEntity) touch() {
	e.updatedAt = e.clock.Now()
	e.changes.MarkDirty(FieldUpdatedAt)
}

func (e *PricedEntity) recordEvent(event DomainEvent) {
	e.events = append(e.events, event)
}
