package price_history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

func TestPriceHistory(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(pricingtest.Time)
	entities := pricingtest.NewEntities(clk)
	e := entities.Seed(t, clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1200})

	superseded := pricingtest.Time.Add(-time.Hour)
	prices := pricingtest.NewPrices()
	prices.Records[e.ID()] = []contracts.PriceRecord{
		{Price: domain.ReconstructPrice("p2", domain.EGP, domain.PriceNormal, domain.MustMoney(1200, 1), pricingtest.Time)},
		{Price: domain.ReconstructPrice("p1", domain.EGP, domain.PriceNormal, domain.MustMoney(1000, 1), pricingtest.Time.Add(-48*time.Hour)), SupersededAt: &superseded},
	}

	q := price_history.NewQuery(entities, prices)

	t.Run("newest first with superseded records", func(t *testing.T) {
		got, err := q.Execute(ctx, &price_history.Request{EntityID: e.ID()})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Nil(t, got[0].SupersededAt)
		assert.Equal(t, superseded, *got[1].SupersededAt)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		_, err := q.Execute(ctx, &price_history.Request{EntityID: e.ID(), Limit: 10000})
		require.NoError(t, err)
		assert.Equal(t, 500, prices.Limits[len(prices.Limits)-1])
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, err := q.Execute(ctx, &price_history.Request{EntityID: "missing"})
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	})
}
