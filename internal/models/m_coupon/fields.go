package m_coupon

const (
	TableName = "coupons"

	Code       = "code"
	Percentage = "percentage"
	Active     = "active"
	ExpiresAt  = "expires_at"
	CreatedAt  = "created_at"
)

var Columns = []string{Code, Percentage, Active, ExpiresAt, CreatedAt}
