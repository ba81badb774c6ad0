package suggest_medical_prices

import (
	"context"
	"math/big"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

type Request struct {
	EntityID      string
	FactorPercent *big.Rat
}

// Suggestion pairs the current NORMAL amount with the proposed MEDICAL one.
type Suggestion struct {
	Currency domain.Currency
	Normal   *domain.Money
	Medical  *domain.Money
	// Current is the stored MEDICAL amount, nil when none is set.
	Current *domain.Money
}

// Query computes medical price suggestions without persisting anything.
type Query struct {
	entities   contracts.EntityRepository
	calculator *domain.MedicalPriceCalculator
}

func NewQuery(entities contracts.EntityRepository) *Query {
	return &Query{entities: entities, calculator: domain.NewMedicalPriceCalculator()}
}

// Execute returns suggestions ordered like PricingCurrencies.
func (q *Query) Execute(ctx context.Context, req *Request) ([]Suggestion, error) {
	entity, err := q.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return nil, err
	}

	suggested, err := q.calculator.SuggestForEntity(entity, req.FactorPercent)
	if err != nil {
		return nil, err
	}

	normal := entity.NormalPrices()
	var out []Suggestion
	for _, c := range domain.PricingCurrencies() {
		medical, ok := suggested[c]
		if !ok {
			continue
		}
		s := Suggestion{Currency: c, Normal: normal[c], Medical: medical}
		if p, ok := entity.Price(c, domain.PriceMedical); ok {
			s.Current = p.Amount()
		}
		out = append(out, s)
	}
	return out, nil
}
