package apply_medical_prices_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/apply_medical_prices"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

func TestApplyMedicalPrices(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, normal map[domain.Currency]int64) (*domain.PricedEntity, *pricingtest.Outbox, *pricingtest.Committer, *apply_medical_prices.Interactor) {
		clk := clock.NewMockClock(pricingtest.Time)
		entities := pricingtest.NewEntities(clk)
		e := entities.Seed(t, clk, "Quarterly", normal)
		outbox := pricingtest.NewOutbox()
		c := &pricingtest.Committer{}
		return e, outbox, c, apply_medical_prices.NewInteractor(entities, pricingtest.NewPrices(), outbox, c)
	}

	t.Run("suggestions with an override", func(t *testing.T) {
		e, outbox, c, uc := setup(t, map[domain.Currency]int64{domain.EGP: 1000, domain.SAR: 100})

		resp, err := uc.Execute(ctx, &apply_medical_prices.Request{
			EntityID:      e.ID(),
			FactorPercent: big.NewRat(50, 1),
			Overrides:     map[string]*big.Rat{"sar": big.NewRat(160, 1)},
		})
		require.NoError(t, err)

		assert.Equal(t, "1500.00", resp.Applied[domain.EGP].String())
		assert.Equal(t, "160.00", resp.Applied[domain.SAR].String())
		assert.Equal(t, []string{"price.set", "price.set", "medical_prices.applied"}, outbox.Types())
		require.Len(t, c.Plans, 1)

		p, ok := e.Price(domain.SAR, domain.PriceMedical)
		require.True(t, ok)
		assert.Equal(t, "160.00", p.Amount().String())
	})

	t.Run("zero factor copies normal prices", func(t *testing.T) {
		e, _, _, uc := setup(t, map[domain.Currency]int64{domain.USD: 25})

		resp, err := uc.Execute(ctx, &apply_medical_prices.Request{EntityID: e.ID(), FactorPercent: new(big.Rat)})
		require.NoError(t, err)
		assert.Equal(t, "25.00", resp.Applied[domain.USD].String())
	})

	t.Run("override for a currency without a normal price", func(t *testing.T) {
		e, _, c, uc := setup(t, map[domain.Currency]int64{domain.EGP: 1000})

		_, err := uc.Execute(ctx, &apply_medical_prices.Request{
			EntityID:      e.ID(),
			FactorPercent: big.NewRat(10, 1),
			Overrides:     map[string]*big.Rat{"USD": big.NewRat(30, 1)},
		})
		assert.ErrorIs(t, err, domain.ErrMedicalRequiresNormal)
		assert.Empty(t, c.Plans)
	})

	t.Run("negative factor", func(t *testing.T) {
		e, _, _, uc := setup(t, map[domain.Currency]int64{domain.EGP: 1000})

		_, err := uc.Execute(ctx, &apply_medical_prices.Request{EntityID: e.ID(), FactorPercent: big.NewRat(-1, 1)})
		assert.ErrorIs(t, err, domain.ErrInvalidMedicalFactor)
	})

	t.Run("no normal prices", func(t *testing.T) {
		e, _, _, uc := setup(t, nil)

		_, err := uc.Execute(ctx, &apply_medical_prices.Request{EntityID: e.ID(), FactorPercent: big.NewRat(50, 1)})
		assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
	})
}
