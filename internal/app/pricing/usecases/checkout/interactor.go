package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request prices an entity for a user and records the purchase.
type Request struct {
	EntityID   string
	UserID     string
	Currency   string
	Type       string
	CouponCode string // optional
}

// Interactor handles the checkout use case.
type Interactor struct {
	entities   contracts.EntityRepository
	coupons    contracts.CouponRepository
	purchases  contracts.PurchaseRepository
	outbox     contracts.OutboxRepository
	committer  contracts.Committer
	clock      clock.Clock
	resolver   *domain.PriceResolver
	calculator *domain.PricingCalculator
}

func NewInteractor(
	entities contracts.EntityRepository,
	coupons contracts.CouponRepository,
	purchases contracts.PurchaseRepository,
	outbox contracts.OutboxRepository,
	committer contracts.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		entities:   entities,
		coupons:    coupons,
		purchases:  purchases,
		outbox:     outbox,
		committer:  committer,
		clock:      clock,
		resolver:   domain.NewPriceResolver(),
		calculator: domain.NewPricingCalculator(),
	}
}

// Execute resolves the price, applies the discounts and stores an immutable snapshot.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PurchaseSnapshot, error) {
	if req.UserID == "" {
		return nil, domain.ErrEmptyUserID
	}
	currency, err := domain.ParsePricingCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	t, err := domain.ParsePriceType(req.Type)
	if err != nil {
		return nil, err
	}

	entity, err := i.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return nil, err
	}

	base, err := i.resolver.Resolve(entity, currency, t)
	if err != nil {
		return nil, err
	}

	now := i.clock.Now()
	var (
		couponPct  *domain.Percentage
		couponCode string
	)
	if req.CouponCode != "" {
		coupon, err := i.coupons.GetByCode(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		if err := coupon.Redeemable(now); err != nil {
			return nil, err
		}
		pct := coupon.Percentage()
		couponPct = &pct
		couponCode = coupon.Code()
	}

	breakdown := i.calculator.Apply(base, entity.Discount(), couponPct).Rounded()
	snapshot := domain.NewPurchaseSnapshot(uuid.New().String(), entity, req.UserID, currency, t, breakdown, couponCode, now)

	plan := committer.NewPlan()
	plan.Add(i.purchases.InsertMut(snapshot))
	events, err := contracts.OutboxMutations(i.outbox, []domain.DomainEvent{snapshot.Event()})
	if err != nil {
		return nil, err
	}
	plan.AddMultiple(events)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	return snapshot, nil
}
