package set_prices

import (
	"context"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// PriceInput sets the price of one (currency, type) slot.
type PriceInput struct {
	Currency string
	Type     string
	Amount   *big.Rat
}

// Slot names a price to remove.
type Slot struct {
	Currency string
	Type     string
}

// Request edits the prices of an entity. Every edit creates a new price record.
type Request struct {
	EntityID string
	Prices   []PriceInput
	Remove   []Slot
}

// Interactor handles the set prices use case.
type Interactor struct {
	entities  contracts.EntityRepository
	prices    contracts.PriceRepository
	outbox    contracts.OutboxRepository
	committer contracts.Committer
}

func NewInteractor(
	entities contracts.EntityRepository,
	prices contracts.PriceRepository,
	outbox contracts.OutboxRepository,
	committer contracts.Committer,
) *Interactor {
	return &Interactor{entities: entities, prices: prices, outbox: outbox, committer: committer}
}

// Execute applies all edits or none.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	// 1. Load aggregate
	entity, err := i.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return err
	}
	defer entity.ClearEvents()

	// 2. Domain calls: NORMAL writes before MEDICAL, MEDICAL removals before NORMAL
	if err := i.write(entity, req.Prices, domain.PriceNormal); err != nil {
		return err
	}
	if err := i.write(entity, req.Prices, domain.PriceMedical); err != nil {
		return err
	}
	if err := i.remove(entity, req.Remove, domain.PriceMedical); err != nil {
		return err
	}
	if err := i.remove(entity, req.Remove, domain.PriceNormal); err != nil {
		return err
	}

	// 3. Commit plan
	plan := committer.NewPlan()
	plan.Add(i.entities.UpdateMut(entity))
	plan.AddMultiple(contracts.PriceMutations(i.prices, entity))

	events, err := contracts.OutboxMutations(i.outbox, entity.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	// 4. Apply
	if plan.IsEmpty() {
		return nil
	}
	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to commit price changes: %w", err)
	}
	return nil
}

func (i *Interactor) write(entity *domain.PricedEntity, inputs []PriceInput, pass domain.PriceType) error {
	for _, in := range inputs {
		t, err := domain.ParsePriceType(in.Type)
		if err != nil {
			return err
		}
		if t != pass {
			continue
		}
		currency, err := domain.ParsePricingCurrency(in.Currency)
		if err != nil {
			return err
		}
		if in.Amount == nil {
			return fmt.Errorf("%w: %s %s", domain.ErrInvalidPrice, currency, t)
		}
		if _, err := entity.SetPrice(uuid.New().String(), currency, t, domain.NewMoneyFromRat(in.Amount)); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interactor) remove(entity *domain.PricedEntity, slots []Slot, pass domain.PriceType) error {
	for _, s := range slots {
		t, err := domain.ParsePriceType(s.Type)
		if err != nil {
			return err
		}
		if t != pass {
			continue
		}
		currency, err := domain.ParsePricingCurrency(s.Currency)
		if err != nil {
			return err
		}
		if err := entity.RemovePrice(currency, t); err != nil {
			return err
		}
	}
	return nil
}
