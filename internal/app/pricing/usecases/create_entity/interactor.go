package create_entity

import (
	"context"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// PriceInput is an initial NORMAL or MEDICAL price.
type PriceInput struct {
	Currency string
	Type     string
	Amount   *big.Rat
}

// Request contains the data to create a priced entity.
type Request struct {
	Kind            string
	Name            string
	DurationDays    int64
	GiftDays        int64
	DiscountPercent *big.Rat // nil = 0%
	Prices          []PriceInput
}

// Interactor handles the create entity use case.
type Interactor struct {
	entities  contracts.EntityRepository
	prices    contracts.PriceRepository
	outbox    contracts.OutboxRepository
	committer contracts.Committer
	clock     clock.Clock
}

func NewInteractor(
	entities contracts.EntityRepository,
	prices contracts.PriceRepository,
	outbox contracts.OutboxRepository,
	committer contracts.Committer,
	clock clock.Clock,
) *Interactor {
	return &Interactor{entities: entities, prices: prices, outbox: outbox, committer: committer, clock: clock}
}

// Execute creates the entity and its initial prices in one commit and returns the new id.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	kind, err := domain.ParseEntityKind(req.Kind)
	if err != nil {
		return "", err
	}

	// 1. Build aggregate
	id := uuid.New().String()
	entity, err := domain.NewPricedEntity(id, kind, req.Name, req.DurationDays, req.GiftDays, i.clock.Now(), i.clock)
	if err != nil {
		return "", err
	}

	if req.DiscountPercent != nil {
		pct, err := domain.NewPercentage(req.DiscountPercent)
		if err != nil {
			return "", err
		}
		entity.SetDiscount(pct)
	}

	// NORMAL first so MEDICAL inputs find their base
	for _, pass := range []domain.PriceType{domain.PriceNormal, domain.PriceMedical} {
		for _, in := range req.Prices {
			t, err := domain.ParsePriceType(in.Type)
			if err != nil {
				return "", err
			}
			if t != pass {
				continue
			}
			currency, err := domain.ParsePricingCurrency(in.Currency)
			if err != nil {
				return "", err
			}
			if in.Amount == nil {
				return "", fmt.Errorf("%w: %s %s", domain.ErrInvalidPrice, currency, t)
			}
			if _, err := entity.SetPrice(uuid.New().String(), currency, t, domain.NewMoneyFromRat(in.Amount)); err != nil {
				return "", err
			}
		}
	}

	// 2. Create commit plan
	plan := committer.NewPlan()
	plan.Add(i.entities.InsertMut(entity))
	plan.AddMultiple(contracts.PriceMutations(i.prices, entity))

	// 3. Outbox events
	events, err := contracts.OutboxMutations(i.outbox, entity.DomainEvents())
	if err != nil {
		return "", err
	}
	plan.AddMultiple(events)

	// 4. Apply plan
	if err := i.committer.Apply(ctx, plan); err != nil {
		return "", fmt.Errorf("failed to create entity: %w", err)
	}

	return id, nil
}
