package domain

import (
	"fmt"
	"math/big"
)

// MedicalPriceCalculator derives MEDICAL price suggestions from NORMAL prices. It is an
// admin-time helper; stored medical prices are never recomputed when NORMAL changes.
type MedicalPriceCalculator struct{}

func NewMedicalPriceCalculator() *MedicalPriceCalculator {
	return &MedicalPriceCalculator{}
}

// Suggest returns normal * (1 + factor/100) rounded to 2 decimals for each currency.
// Currencies whose normal price is missing or zero get no suggestion.
func (m *MedicalPriceCalculator) Suggest(normal map[Currency]*Money, factorPercent *big.Rat) (map[Currency]*Money, error) {
	if factorPercent == nil || factorPercent.Sign() < 0 {
		return nil, ErrInvalidMedicalFactor
	}
	multiplier := new(big.Rat).Add(big.NewRat(1, 1), new(big.Rat).Quo(factorPercent, hundred))

	out := make(map[Currency]*Money, len(normal))
	for c, amt := range normal {
		if amt == nil || !amt.IsPositive() {
			continue
		}
		out[c] = amt.MultiplyByRat(multiplier).Round2()
	}
	return out, nil
}

// SuggestForEntity runs Suggest over the entity's current NORMAL prices.
func (m *MedicalPriceCalculator) SuggestForEntity(e *PricedEntity, factorPercent *big.Rat) (map[Currency]*Money, error) {
	out, err := m.Suggest(e.NormalPrices(), factorPercent)
	if err != nil {
		return nil, fmt.Errorf("entity %s: %w", e.ID(), err)
	}
	return out, nil
}
