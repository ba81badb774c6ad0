package m_coupon

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the coupons table.
type Data struct {
	Code       string           `spanner:"code"`
	Percentage big.Rat          `spanner:"percentage"`
	Active     bool             `spanner:"active"`
	ExpiresAt  spanner.NullTime `spanner:"expires_at"`
	CreatedAt  time.Time        `spanner:"created_at"`
}
