package quote_price_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/quote_price"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/locale"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

func TestQuotePrice(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(pricingtest.Time)
	m := metrics.New()

	entities := pricingtest.NewEntities(clk)
	e, err := domain.NewPricedEntity("plan-1", domain.KindSubscriptionPlan, "Quarterly", 90, 7, clk.Now(), clk)
	require.NoError(t, err)
	_, err = e.SetPrice("p1", domain.EGP, domain.PriceNormal, domain.MustMoney(1000, 1))
	require.NoError(t, err)
	_, err = e.SetPrice("p2", domain.EGP, domain.PriceMedical, domain.MustMoney(139950, 100))
	require.NoError(t, err)
	_, err = e.SetPrice("p3", domain.USD, domain.PriceNormal, domain.MustMoney(25, 1))
	require.NoError(t, err)
	e.SetDiscount(domain.MustPercentage(20))
	entities.Put(e)

	expiry := pricingtest.Time.Add(24 * time.Hour)
	summer, err := domain.NewCoupon("SUMMER", domain.MustPercentage(10), true, &expiry)
	require.NoError(t, err)

	q := quote_price.NewQuery(entities, pricingtest.NewCoupons(summer), clk, m)

	t.Run("english with coupon", func(t *testing.T) {
		resp, err := q.Execute(ctx, &quote_price.Request{EntityID: "plan-1", Currency: "egp", CouponCode: "summer", Locale: locale.English})
		require.NoError(t, err)

		assert.Equal(t, "700.00", resp.Breakdown.Final.String())
		assert.Equal(t, "300.00", resp.Breakdown.TotalDiscount().String())
		assert.Equal(t, "1000 EGP", resp.FormattedBase)
		assert.Equal(t, "700 EGP", resp.FormattedFinal)
		assert.Equal(t, "3 months", resp.Period)
		assert.Equal(t, "1 week", resp.GiftPeriod)
		assert.Equal(t, "SUMMER", resp.CouponCode)
		assert.Equal(t, []domain.Currency{domain.EGP, domain.USD}, resp.Available)
	})

	t.Run("arabic medical", func(t *testing.T) {
		resp, err := q.Execute(ctx, &quote_price.Request{EntityID: "plan-1", Currency: "EGP", Type: "medical", Locale: locale.Arabic})
		require.NoError(t, err)

		assert.Equal(t, "1399.50 ج.م", resp.FormattedBase)
		assert.Equal(t, "1119.60 ج.م", resp.FormattedFinal)
		assert.Equal(t, "3 أشهر", resp.Period)
		assert.Nil(t, resp.CouponPercent)
		assert.Equal(t, []domain.Currency{domain.EGP}, resp.Available)
	})

	t.Run("missing price is not converted", func(t *testing.T) {
		_, err := q.Execute(ctx, &quote_price.Request{EntityID: "plan-1", Currency: "SAR"})
		assert.ErrorIs(t, err, domain.ErrPriceUnavailable)

		_, err = q.Execute(ctx, &quote_price.Request{EntityID: "plan-1", Currency: "USD", Type: "MEDICAL"})
		assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
	})

	t.Run("coupon expires at its expiry instant", func(t *testing.T) {
		clk.Set(expiry)
		t.Cleanup(func() { clk.Set(pricingtest.Time) })

		_, err := q.Execute(ctx, &quote_price.Request{EntityID: "plan-1", Currency: "EGP", CouponCode: "SUMMER"})
		assert.ErrorIs(t, err, domain.ErrCouponExpired)
	})

	t.Run("outcomes are counted", func(t *testing.T) {
		_, _ = q.Execute(ctx, &quote_price.Request{EntityID: "plan-1", Currency: "XYZ"})

		assert.Equal(t, float64(2), testutil.ToFloat64(m.Quotes.WithLabelValues("EGP", "ok")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Quotes.WithLabelValues("SAR", "unavailable")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Quotes.WithLabelValues("EGP", "error")))
		assert.Equal(t, float64(1), testutil.ToFloat64(m.Quotes.WithLabelValues("other", "error")))
	})
}
