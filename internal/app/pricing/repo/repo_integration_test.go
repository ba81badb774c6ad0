//go:build integration

package repo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/testutil"
)

func commitEntity(t *testing.T, c *committer.Committer, muts ...*spanner.Mutation) {
	t.Helper()
	plan := committer.NewPlan()
	plan.AddMultiple(muts)
	require.NoError(t, c.Apply(context.Background(), plan))
}

func TestEntityRepo_RoundTrip(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))
	entities := NewEntityRepo(client, clk)
	prices := NewPriceRepo(client)
	c := committer.NewCommitter(client)

	e, err := domain.NewPricedEntity("ent-1", domain.KindSubscriptionPlan, "Gold", 30, 7, clk.Now(), clk)
	require.NoError(t, err)
	_, err = e.SetPrice("p-1", domain.EGP, domain.PriceNormal, domain.MustMoney(1000, 1))
	require.NoError(t, err)
	e.SetDiscount(domain.MustPercentage(20))

	muts := append([]*spanner.Mutation{entities.InsertMut(e)}, contracts.PriceMutations(prices, e)...)
	commitEntity(t, c, muts...)

	loaded, err := entities.GetByID(ctx, "ent-1")
	require.NoError(t, err)
	assert.Equal(t, "Gold", loaded.Name())
	assert.Equal(t, "20", loaded.Discount().String())
	p, ok := loaded.Price(domain.EGP, domain.PriceNormal)
	require.True(t, ok)
	assert.Equal(t, "1000.00", p.Amount().String())
	assert.False(t, loaded.Loyalty(domain.PriceNormal).Enabled())

	t.Run("edit supersedes and keeps history", func(t *testing.T) {
		clk.Advance(time.Hour)
		_, err := loaded.SetPrice("p-2", domain.EGP, domain.PriceNormal, domain.MustMoney(1200, 1))
		require.NoError(t, err)
		cfg, err := domain.EnabledLoyalty(10, 100)
		require.NoError(t, err)
		require.NoError(t, loaded.SetLoyalty(domain.PriceNormal, cfg))

		muts := append([]*spanner.Mutation{entities.UpdateMut(loaded)}, contracts.PriceMutations(prices, loaded)...)
		commitEntity(t, c, muts...)

		again, err := entities.GetByID(ctx, "ent-1")
		require.NoError(t, err)
		p, _ := again.Price(domain.EGP, domain.PriceNormal)
		assert.Equal(t, "p-2", p.ID())
		assert.Equal(t, int64(10), *again.Loyalty(domain.PriceNormal).PointsAwarded())

		history, err := prices.History(ctx, "ent-1", 10)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Nil(t, history[0].SupersededAt)
		assert.NotNil(t, history[1].SupersededAt)
	})

	t.Run("missing entity", func(t *testing.T) {
		_, err := entities.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)
	})
}

func TestCouponRepo(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	coupons := NewCouponRepo(client)
	coupon, err := domain.NewCoupon("save10", domain.MustPercentage(10), true, nil)
	require.NoError(t, err)
	commitEntity(t, committer.NewCommitter(client), coupons.UpsertMut(coupon, time.Now()))

	got, err := coupons.GetByCode(ctx, "SAVE10")
	require.NoError(t, err)
	assert.True(t, got.Percentage().Equals(domain.MustPercentage(10)))

	_, err = coupons.GetByCode(ctx, "none")
	assert.ErrorIs(t, err, domain.ErrCouponNotFound)
}

func TestReadModel_RevenueByCurrency(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))
	e, err := domain.NewPricedEntity("ent-1", domain.KindProduct, "Shaker", 0, 0, clk.Now(), clk)
	require.NoError(t, err)

	purchases := NewPurchaseRepo()
	calc := domain.NewPricingCalculator()
	var muts []*spanner.Mutation
	for i, amt := range []int64{100, 250} {
		b := calc.Apply(domain.MustMoney(amt, 1), domain.Percentage{}, nil)
		snap := domain.NewPurchaseSnapshot("pur-"+string(rune('a'+i)), e, "u1", domain.EGP, domain.PriceNormal, b, "", clk.Now())
		muts = append(muts, purchases.InsertMut(snap))
	}
	b := calc.Apply(domain.MustMoney(10, 1), domain.Percentage{}, nil)
	muts = append(muts, purchases.InsertMut(domain.NewPurchaseSnapshot("pur-z", e, "u2", domain.USD, domain.PriceNormal, b, "", clk.Now())))
	commitEntity(t, committer.NewCommitter(client), muts...)
	testutil.AssertRowCount(t, client, "purchases", 3)

	totals, err := NewReadModel(client).RevenueByCurrency(ctx, contracts.RevenueFilter{})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "EGP", totals[0].Currency)
	assert.Equal(t, "350", totals[0].Total.FloatString(0))
	assert.Equal(t, int64(2), totals[0].Purchases)
}

func TestOutboxRepo_Cleanup(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	model := m_outbox.NewModel()
	row := func(id, status string, processedAt time.Time) *spanner.Mutation {
		d := &m_outbox.Data{EventID: id, EventType: "price.set", AggregateID: "ent-1", Status: status}
		if !processedAt.IsZero() {
			d.ProcessedAt = spanner.NullTime{Time: processedAt, Valid: true}
		}
		return model.InsertMut(d)
	}
	commitEntity(t, committer.NewCommitter(client),
		row("ev-old", m_outbox.StatusCompleted, now.AddDate(0, 0, -40)),
		row("ev-new", m_outbox.StatusCompleted, now.AddDate(0, 0, -1)),
		row("ev-failed", m_outbox.StatusFailed, now.AddDate(0, 0, -40)),
		row("ev-pending", m_outbox.StatusPending, time.Time{}),
	)

	outbox := NewOutboxRepo(client)
	cutoff := now.AddDate(0, 0, -30)

	n, err := outbox.CountProcessedBefore(ctx, m_outbox.StatusCompleted, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = outbox.DeleteProcessedBefore(ctx, m_outbox.StatusCompleted, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	testutil.AssertRowCount(t, client, m_outbox.TableName, 3)
}
