package domain

import (
	"strings"
	"time"
)

// Coupon is a code redeemable at checkout for an extra percentage off the base price.
type Coupon struct {
	code       string
	percentage Percentage
	active     bool
	expiresAt  *time.Time
}

// NewCoupon validates a coupon. Codes are case-insensitive and stored upper-case.
func NewCoupon(code string, percentage Percentage, active bool, expiresAt *time.Time) (*Coupon, error) {
	code = NormalizeCouponCode(code)
	if code == "" {
		return nil, ErrEmptyCouponCode
	}
	return &Coupon{code: code, percentage: percentage, active: active, expiresAt: expiresAt}, nil
}

// NormalizeCouponCode trims and upper-cases a user supplied code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (c *Coupon) Code() string           { return c.code }
func (c *Coupon) Percentage() Percentage { return c.percentage }
func (c *Coupon) Active() bool           { return c.active }
func (c *Coupon) ExpiresAt() *time.Time  { return c.expiresAt }

// Redeemable returns nil when the coupon can be applied at now.
func (c *Coupon) Redeemable(now time.Time) error {
	if !c.active {
		return ErrCouponInactive
	}
	if c.expiresAt != nil && !now.Before(*c.expiresAt) {
		return ErrCouponExpired
	}
	return nil
}
