package update_loyalty_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_loyalty"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

func TestUpdateLoyalty(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(pricingtest.Time)
	entities := pricingtest.NewEntities(clk)
	e := entities.Seed(t, clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1000})

	t.Run("enable per tier", func(t *testing.T) {
		outbox := pricingtest.NewOutbox()
		uc := update_loyalty.NewInteractor(entities, outbox, &pricingtest.Committer{})

		err := uc.Execute(ctx, &update_loyalty.Request{EntityID: e.ID(), Type: "MEDICAL", Enabled: true, PointsAwarded: 50, PointsRequired: 0})
		require.NoError(t, err)

		medical := e.Loyalty(domain.PriceMedical)
		require.True(t, medical.Enabled())
		assert.Equal(t, int64(50), *medical.PointsAwarded())
		// zero is a real value, distinct from disabled
		require.NotNil(t, medical.PointsRequired())
		assert.Equal(t, int64(0), *medical.PointsRequired())

		assert.False(t, e.Loyalty(domain.PriceNormal).Enabled())
		assert.Equal(t, []string{"loyalty.updated"}, outbox.Types())
	})

	t.Run("disable clears both values", func(t *testing.T) {
		uc := update_loyalty.NewInteractor(entities, pricingtest.NewOutbox(), &pricingtest.Committer{})

		require.NoError(t, uc.Execute(ctx, &update_loyalty.Request{EntityID: e.ID(), Type: "MEDICAL", PointsAwarded: 99}))
		medical := e.Loyalty(domain.PriceMedical)
		assert.False(t, medical.Enabled())
		assert.Nil(t, medical.PointsAwarded())
		assert.Nil(t, medical.PointsRequired())
	})

	t.Run("negative points", func(t *testing.T) {
		c := &pricingtest.Committer{}
		uc := update_loyalty.NewInteractor(entities, pricingtest.NewOutbox(), c)

		err := uc.Execute(ctx, &update_loyalty.Request{EntityID: e.ID(), Enabled: true, PointsAwarded: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidLoyaltyPoints)
		assert.Empty(t, c.Plans)
	})
}
