package apply_medical_prices

import (
	"context"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request derives MEDICAL prices from the current NORMAL prices. Overrides replace the
// suggested value for a currency; an override for a currency without a suggestion is an error.
type Request struct {
	EntityID      string
	FactorPercent *big.Rat
	Overrides     map[string]*big.Rat
}

// Response lists the stored medical prices.
type Response struct {
	Applied map[domain.Currency]*domain.Money
}

// Interactor handles the apply medical prices use case.
type Interactor struct {
	entities   contracts.EntityRepository
	prices     contracts.PriceRepository
	outbox     contracts.OutboxRepository
	committer  contracts.Committer
	calculator *domain.MedicalPriceCalculator
}

func NewInteractor(
	entities contracts.EntityRepository,
	prices contracts.PriceRepository,
	outbox contracts.OutboxRepository,
	committer contracts.Committer,
) *Interactor {
	return &Interactor{
		entities:   entities,
		prices:     prices,
		outbox:     outbox,
		committer:  committer,
		calculator: domain.NewMedicalPriceCalculator(),
	}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Load aggregate
	entity, err := i.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return nil, err
	}
	defer entity.ClearEvents()

	// 2. Suggest, then let overrides win
	suggested, err := i.calculator.SuggestForEntity(entity, req.FactorPercent)
	if err != nil {
		return nil, err
	}
	for code, amount := range req.Overrides {
		currency, err := domain.ParsePricingCurrency(code)
		if err != nil {
			return nil, err
		}
		if _, ok := suggested[currency]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMedicalRequiresNormal, currency)
		}
		if amount == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPrice, currency)
		}
		suggested[currency] = domain.NewMoneyFromRat(amount)
	}
	if len(suggested) == 0 {
		return nil, fmt.Errorf("%w: entity has no normal prices", domain.ErrPriceUnavailable)
	}

	if err := entity.ApplyMedicalPrices(uuid.NewString, suggested, req.FactorPercent); err != nil {
		return nil, err
	}

	// 3. Commit plan
	plan := committer.NewPlan()
	plan.Add(i.entities.UpdateMut(entity))
	plan.AddMultiple(contracts.PriceMutations(i.prices, entity))
	events, err := contracts.OutboxMutations(i.outbox, entity.DomainEvents())
	if err != nil {
		return nil, err
	}
	plan.AddMultiple(events)

	// 4. Apply
	if err := i.committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to apply medical prices: %w", err)
	}

	return &Response{Applied: suggested}, nil
}
