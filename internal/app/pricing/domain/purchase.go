package domain

import "time"

// PurchaseSnapshot freezes the price a user paid. It does not change when the
// entity's prices or discount are edited later.
type PurchaseSnapshot struct {
	ID             string
	EntityID       string
	UserID         string
	Currency       Currency
	Type           PriceType
	Base           *Money
	EntityDiscount *Money
	CouponCode     string
	CouponDiscount *Money
	Final          *Money
	PointsAwarded  *int64
	CreatedAt      time.Time
}

// NewPurchaseSnapshot captures a breakdown for a user. couponCode is empty when no coupon was used.
func NewPurchaseSnapshot(id string, e *PricedEntity, userID string, currency Currency, t PriceType, b *Breakdown, couponCode string, now time.Time) *PurchaseSnapshot {
	return &PurchaseSnapshot{
		ID:             id,
		EntityID:       e.ID(),
		UserID:         userID,
		Currency:       currency,
		Type:           t,
		Base:           b.Base.Copy(),
		EntityDiscount: b.EntityDiscount.Copy(),
		CouponCode:     couponCode,
		CouponDiscount: b.CouponDiscount.Copy(),
		Final:          b.Final.Copy(),
		PointsAwarded:  e.Loyalty(t).PointsAwarded(),
		CreatedAt:      now,
	}
}

// Event returns the purchase.recorded event for the snapshot.
func (p *PurchaseSnapshot) Event() *PurchaseRecordedEvent {
	return &PurchaseRecordedEvent{
		PurchaseID:    p.ID,
		EntityID:      p.EntityID,
		UserID:        p.UserID,
		Currency:      string(p.Currency),
		Type:          string(p.Type),
		Final:         p.Final.String(),
		CouponCode:    p.CouponCode,
		PointsAwarded: p.PointsAwarded,
		RecordedAt:    p.CreatedAt,
	}
}
