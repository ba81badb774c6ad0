package pricing

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/amount"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes. Messages keep the
// wrapped detail (currency, tier) since admins act on it.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrEntityNotFound),
		errors.Is(err, domain.ErrCouponNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, domain.ErrPriceUnavailable):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, domain.ErrMedicalRequiresNormal),
		errors.Is(err, domain.ErrCouponInactive),
		errors.Is(err, domain.ErrCouponExpired):
		return status.Error(codes.FailedPrecondition, err.Error())

	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrUnsupportedCurrency),
		errors.Is(err, domain.ErrInvalidPriceType),
		errors.Is(err, domain.ErrInvalidDiscountPercent),
		errors.Is(err, domain.ErrInvalidMedicalFactor),
		errors.Is(err, domain.ErrInvalidLoyaltyPoints),
		errors.Is(err, domain.ErrEmptyCouponCode),
		errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, amount.ErrInvalidAmount):
		return status.Error(codes.InvalidArgument, err.Error())

	default:
		// Unknown error - return Internal
		return status.Error(codes.Internal, "internal server error")
	}
}
