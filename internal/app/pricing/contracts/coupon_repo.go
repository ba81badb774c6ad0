package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// CouponRepository persists coupons.
type CouponRepository interface {
	UpsertMut(c *domain.Coupon, now time.Time) *spanner.Mutation

	// GetByCode returns domain.ErrCouponNotFound for unknown codes
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}
