package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// EntityCreatedEvent is emitted when a priced entity is created.
type EntityCreatedEvent struct {
	EntityID     string    `json:"entity_id"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	DurationDays int64     `json:"duration_days"`
	GiftDays     int64     `json:"gift_days"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e *EntityCreatedEvent) EventType() string   { return "entity.created" }
func (e *EntityCreatedEvent) AggregateID() string { return e.EntityID }

// PriceSetEvent is emitted when a new price record is written for a (currency, tier) slot.
type PriceSetEvent struct {
	EntityID string    `json:"entity_id"`
	PriceID  string    `json:"price_id"`
	Currency string    `json:"currency"`
	Type     string    `json:"type"`
	Amount   string    `json:"amount"`
	SetAt    time.Time `json:"set_at"`
}

func (e *PriceSetEvent) EventType() string   { return "price.set" }
func (e *PriceSetEvent) AggregateID() string { return e.EntityID }

// PriceSupersededEvent is emitted when a price record is replaced by a newer one or removed.
type PriceSupersededEvent struct {
	EntityID     string    `json:"entity_id"`
	PriceID      string    `json:"price_id"`
	Currency     string    `json:"currency"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	SupersededAt time.Time `json:"superseded_at"`
}

func (e *PriceSupersededEvent) EventType() string   { return "price.superseded" }
func (e *PriceSupersededEvent) AggregateID() string { return e.EntityID }

// DiscountUpdatedEvent is emitted when the entity-level discount changes.
type DiscountUpdatedEvent struct {
	EntityID  string    `json:"entity_id"`
	Percent   string    `json:"percent"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *DiscountUpdatedEvent) EventType() string   { return "discount.updated" }
func (e *DiscountUpdatedEvent) AggregateID() string { return e.EntityID }

// MedicalPricesAppliedEvent summarizes a one-shot medical price derivation.
type MedicalPricesAppliedEvent struct {
	EntityID      string            `json:"entity_id"`
	FactorPercent string            `json:"factor_percent"`
	Prices        map[string]string `json:"prices"`
	AppliedAt     time.Time         `json:"applied_at"`
}

func (e *MedicalPricesAppliedEvent) EventType() string   { return "medical_prices.applied" }
func (e *MedicalPricesAppliedEvent) AggregateID() string { return e.EntityID }

// LoyaltyUpdatedEvent is emitted when loyalty points for a tier are enabled, changed or disabled.
type LoyaltyUpdatedEvent struct {
	EntityID       string    `json:"entity_id"`
	Type           string    `json:"type"`
	PointsAwarded  *int64    `json:"points_awarded"`
	PointsRequired *int64    `json:"points_required"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (e *LoyaltyUpdatedEvent) EventType() string   { return "loyalty.updated" }
func (e *LoyaltyUpdatedEvent) AggregateID() string { return e.EntityID }

// PurchaseRecordedEvent is emitted when a checkout snapshot is stored.
type PurchaseRecordedEvent struct {
	PurchaseID    string    `json:"purchase_id"`
	EntityID      string    `json:"entity_id"`
	UserID        string    `json:"user_id"`
	Currency      string    `json:"currency"`
	Type          string    `json:"type"`
	Final         string    `json:"final"`
	CouponCode    string    `json:"coupon_code,omitempty"`
	PointsAwarded *int64    `json:"points_awarded,omitempty"`
	RecordedAt    time.Time `json:"recorded_at"`
}

func (e *PurchaseRecordedEvent) EventType() string   { return "purchase.recorded" }
func (e *PurchaseRecordedEvent) AggregateID() string { return e.PurchaseID }
