package m_purchase

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the purchases table.
type Data struct {
	PurchaseID     string             `spanner:"purchase_id"`
	EntityID       string             `spanner:"entity_id"`
	UserID         string             `spanner:"user_id"`
	Currency       string             `spanner:"currency"`
	PriceType      string             `spanner:"price_type"`
	BaseAmount     big.Rat            `spanner:"base_amount"`
	EntityDiscount big.Rat            `spanner:"entity_discount"`
	CouponCode     spanner.NullString `spanner:"coupon_code"`
	CouponDiscount big.Rat            `spanner:"coupon_discount"`
	FinalAmount    big.Rat            `spanner:"final_amount"`
	PointsAwarded  spanner.NullInt64  `spanner:"points_awarded"`
	CreatedAt      time.Time          `spanner:"created_at"`
}
