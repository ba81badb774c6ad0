package upsert_coupon

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request creates or replaces a coupon.
type Request struct {
	Code      string
	Percent   *big.Rat
	Active    bool
	ExpiresAt *time.Time
}

// Interactor handles the upsert coupon use case.
type Interactor struct {
	coupons   contracts.CouponRepository
	committer contracts.Committer
	clock     clock.Clock
}

func NewInteractor(coupons contracts.CouponRepository, committer contracts.Committer, clock clock.Clock) *Interactor {
	return &Interactor{coupons: coupons, committer: committer, clock: clock}
}

// Execute stores the coupon and returns its normalized code.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	pct, err := domain.NewPercentage(req.Percent)
	if err != nil {
		return "", err
	}
	coupon, err := domain.NewCoupon(req.Code, pct, req.Active, req.ExpiresAt)
	if err != nil {
		return "", err
	}

	plan := committer.NewPlan()
	plan.Add(i.coupons.UpsertMut(coupon, i.clock.Now()))
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to store coupon: %w", err)
	}
	return coupon.Code(), nil
}
