package domain

import "errors"

// Domain errors as sentinel values
var (
	// Entity errors
	ErrEntityNotFound  = errors.New("priced entity not found")
	ErrEmptyName       = errors.New("entity name cannot be empty")
	ErrInvalidKind     = errors.New("entity kind must be subscription_plan, programme or product")
	ErrInvalidDuration = errors.New("duration and gift days cannot be negative")

	// Price errors
	ErrInvalidPrice          = errors.New("price required and must be greater than 0")
	ErrUnsupportedCurrency   = errors.New("unsupported currency")
	ErrInvalidPriceType      = errors.New("price type must be NORMAL or MEDICAL")
	ErrPriceUnavailable      = errors.New("price not available")
	ErrMedicalRequiresNormal = errors.New("medical price requires a normal price in the same currency")

	// Discount errors
	ErrInvalidDiscountPercent = errors.New("discount percentage must be between 0 and 100")
	ErrInvalidMedicalFactor   = errors.New("medical factor percentage cannot be negative")

	// Loyalty errors
	ErrInvalidLoyaltyPoints = errors.New("loyalty points cannot be negative")

	// Coupon errors
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrEmptyCouponCode = errors.New("coupon code cannot be empty")

	// Purchase errors
	ErrEmptyUserID = errors.New("user id is required")
)
