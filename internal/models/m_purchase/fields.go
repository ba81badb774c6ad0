package m_purchase

// Field name constants for the purchases table.
const (
	TableName = "purchases"

	PurchaseID     = "purchase_id"
	EntityID       = "entity_id"
	UserID         = "user_id"
	Currency       = "currency"
	PriceType      = "price_type"
	BaseAmount     = "base_amount"
	EntityDiscount = "entity_discount"
	CouponCode     = "coupon_code"
	CouponDiscount = "coupon_discount"
	FinalAmount    = "final_amount"
	PointsAwarded  = "points_awarded"
	CreatedAt      = "created_at"
)

var Columns = []string{
	PurchaseID,
	EntityID,
	UserID,
	Currency,
	PriceType,
	BaseAmount,
	EntityDiscount,
	CouponCode,
	CouponDiscount,
	FinalAmount,
	PointsAwarded,
	CreatedAt,
}
