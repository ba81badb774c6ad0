package set_prices_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_prices"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

type harness struct {
	clk       *clock.MockClock
	entities  *pricingtest.Entities
	outbox    *pricingtest.Outbox
	committer *pricingtest.Committer
	uc        *set_prices.Interactor
}

func newHarness() *harness {
	clk := clock.NewMockClock(pricingtest.Time)
	h := &harness{
		clk:       clk,
		entities:  pricingtest.NewEntities(clk),
		outbox:    pricingtest.NewOutbox(),
		committer: &pricingtest.Committer{},
	}
	h.uc = set_prices.NewInteractor(h.entities, pricingtest.NewPrices(), h.outbox, h.committer)
	return h
}

func TestSetPrices(t *testing.T) {
	ctx := context.Background()

	t.Run("editing a price supersedes the old record", func(t *testing.T) {
		h := newHarness()
		e := h.entities.Seed(t, h.clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1000})
		old, _ := e.Price(domain.EGP, domain.PriceNormal)

		err := h.uc.Execute(ctx, &set_prices.Request{
			EntityID: e.ID(),
			Prices:   []set_prices.PriceInput{{Currency: "EGP", Type: "NORMAL", Amount: big.NewRat(1200, 1)}},
		})
		require.NoError(t, err)

		// update + supersede + insert + 2 events
		assert.Equal(t, 5, h.committer.Last().Count())
		assert.Equal(t, []string{"price.superseded", "price.set"}, h.outbox.Types())

		current, ok := e.Price(domain.EGP, domain.PriceNormal)
		require.True(t, ok)
		assert.NotEqual(t, old.ID(), current.ID())
		assert.Equal(t, "1200.00", current.Amount().String())
	})

	t.Run("same amount commits nothing", func(t *testing.T) {
		h := newHarness()
		e := h.entities.Seed(t, h.clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1000})

		err := h.uc.Execute(ctx, &set_prices.Request{
			EntityID: e.ID(),
			Prices:   []set_prices.PriceInput{{Currency: "EGP", Amount: big.NewRat(1000, 1)}},
		})
		require.NoError(t, err)
		assert.Empty(t, h.committer.Plans)
	})

	t.Run("medical is written after normal in the same request", func(t *testing.T) {
		h := newHarness()
		e := h.entities.Seed(t, h.clk, "Monthly", nil)

		err := h.uc.Execute(ctx, &set_prices.Request{
			EntityID: e.ID(),
			Prices: []set_prices.PriceInput{
				{Currency: "SAR", Type: "MEDICAL", Amount: big.NewRat(150, 1)},
				{Currency: "SAR", Type: "NORMAL", Amount: big.NewRat(100, 1)},
			},
		})
		require.NoError(t, err)
		_, ok := e.Price(domain.SAR, domain.PriceMedical)
		assert.True(t, ok)
	})

	t.Run("removing medical then normal in one request", func(t *testing.T) {
		h := newHarness()
		e := h.entities.Seed(t, h.clk, "Monthly", map[domain.Currency]int64{domain.AED: 300})
		_, err := e.SetPrice("m1", domain.AED, domain.PriceMedical, domain.MustMoney(450, 1))
		require.NoError(t, err)
		h.entities.Put(e)

		err = h.uc.Execute(ctx, &set_prices.Request{
			EntityID: e.ID(),
			Remove: []set_prices.Slot{
				{Currency: "AED", Type: "NORMAL"},
				{Currency: "AED", Type: "MEDICAL"},
			},
		})
		require.NoError(t, err)
		assert.Empty(t, e.Prices())
		assert.Equal(t, []string{"price.superseded", "price.superseded"}, h.outbox.Types())
	})

	t.Run("set then remove in one request publishes nothing", func(t *testing.T) {
		h := newHarness()
		e := h.entities.Seed(t, h.clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1000})

		err := h.uc.Execute(ctx, &set_prices.Request{
			EntityID: e.ID(),
			Prices:   []set_prices.PriceInput{{Currency: "SAR", Amount: big.NewRat(100, 1)}},
			Remove:   []set_prices.Slot{{Currency: "SAR", Type: "NORMAL"}},
		})
		require.NoError(t, err)

		// entity update only
		assert.Equal(t, 1, h.committer.Last().Count())
		assert.Empty(t, h.outbox.Types())
		_, ok := e.Price(domain.SAR, domain.PriceNormal)
		assert.False(t, ok)
	})

	t.Run("setting a slot twice publishes the stored record only", func(t *testing.T) {
		h := newHarness()
		e := h.entities.Seed(t, h.clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1000})

		err := h.uc.Execute(ctx, &set_prices.Request{
			EntityID: e.ID(),
			Prices: []set_prices.PriceInput{
				{Currency: "EGP", Amount: big.NewRat(1200, 1)},
				{Currency: "EGP", Amount: big.NewRat(1300, 1)},
			},
		})
		require.NoError(t, err)

		current, ok := e.Price(domain.EGP, domain.PriceNormal)
		require.True(t, ok)
		assert.Equal(t, "1300.00", current.Amount().String())

		// update + supersede + insert + 2 events
		assert.Equal(t, 5, h.committer.Last().Count())
		require.Equal(t, []string{"price.superseded", "price.set"}, h.outbox.Types())
		assert.Contains(t, h.outbox.Events[1].Payload, current.ID())
		assert.Contains(t, h.outbox.Events[1].Payload, `"amount":"1300.00"`)
	})

	t.Run("errors", func(t *testing.T) {
		h := newHarness()
		e := h.entities.Seed(t, h.clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1000})

		err := h.uc.Execute(ctx, &set_prices.Request{EntityID: "missing"})
		assert.ErrorIs(t, err, domain.ErrEntityNotFound)

		err = h.uc.Execute(ctx, &set_prices.Request{EntityID: e.ID(), Remove: []set_prices.Slot{{Currency: "USD"}}})
		assert.ErrorIs(t, err, domain.ErrPriceUnavailable)

		err = h.uc.Execute(ctx, &set_prices.Request{EntityID: e.ID(), Prices: []set_prices.PriceInput{
			{Currency: "EGP", Type: "VIP", Amount: big.NewRat(1, 1)},
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidPriceType)

		err = h.uc.Execute(ctx, &set_prices.Request{EntityID: e.ID(), Prices: []set_prices.PriceInput{
			{Currency: "EGP", Amount: big.NewRat(-5, 1)},
		}})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)

		assert.Empty(t, h.committer.Plans)
	})
}
