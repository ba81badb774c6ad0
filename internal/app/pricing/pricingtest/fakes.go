// Package pricingtest provides in-memory stand-ins for the pricing repositories so use cases and
// queries can be tested without the Spanner emulator. Mutations are still built by the real
// repositories; only reads and commits are faked.
package pricingtest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Entities is an EntityRepository backed by a map.
type Entities struct {
	contracts.EntityRepository

	mu   sync.Mutex
	byID map[string]*domain.PricedEntity
	// Inserted and Updated count the mutations requested.
	Inserted int
	Updated  int
}

func NewEntities(clk clock.Clock) *Entities {
	return &Entities{
		EntityRepository: repo.NewEntityRepo(nil, clk),
		byID:             make(map[string]*domain.PricedEntity),
	}
}

// Put stores e as it would be after a successful commit.
func (f *Entities) Put(e *domain.PricedEntity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ClearEvents()
	e.Changes().Clear()
	f.byID[e.ID()] = e
}

func (f *Entities) InsertMut(e *domain.PricedEntity) *spanner.Mutation {
	f.mu.Lock()
	f.Inserted++
	f.mu.Unlock()
	return f.EntityRepository.InsertMut(e)
}

func (f *Entities) UpdateMut(e *domain.PricedEntity) *spanner.Mutation {
	mut := f.EntityRepository.UpdateMut(e)
	if mut != nil {
		f.mu.Lock()
		f.Updated++
		f.mu.Unlock()
	}
	return mut
}

func (f *Entities) GetByID(_ context.Context, id string) (*domain.PricedEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrEntityNotFound
	}
	return e, nil
}

// Prices is a PriceRepository that serves a fixed history.
type Prices struct {
	contracts.PriceRepository
	Records map[string][]contracts.PriceRecord
	Limits  []int
}

func NewPrices() *Prices {
	return &Prices{
		PriceRepository: repo.NewPriceRepo(nil),
		Records:         make(map[string][]contracts.PriceRecord),
	}
}

func (f *Prices) History(_ context.Context, entityID string, limit int) ([]contracts.PriceRecord, error) {
	f.Limits = append(f.Limits, limit)
	records := f.Records[entityID]
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Coupons is a CouponRepository backed by a map.
type Coupons struct {
	contracts.CouponRepository
	byCode map[string]*domain.Coupon
}

func NewCoupons(coupons ...*domain.Coupon) *Coupons {
	f := &Coupons{CouponRepository: repo.NewCouponRepo(nil), byCode: make(map[string]*domain.Coupon)}
	for _, c := range coupons {
		f.byCode[c.Code()] = c
	}
	return f
}

func (f *Coupons) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	c, ok := f.byCode[domain.NormalizeCouponCode(code)]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	return c, nil
}

// Outbox records the events handed to it.
type Outbox struct {
	contracts.OutboxRepository
	Events []*contracts.OutboxEvent
}

func NewOutbox() *Outbox {
	return &Outbox{OutboxRepository: repo.NewOutboxRepo(nil)}
}

func (f *Outbox) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	f.Events = append(f.Events, event)
	return f.OutboxRepository.InsertMut(event)
}

// Types returns the recorded event types in order.
func (f *Outbox) Types() []string {
	out := make([]string, len(f.Events))
	for i, e := range f.Events {
		out[i] = e.EventType
	}
	return out
}

// Committer records plans instead of writing them. Err, when set, is returned by Apply.
type Committer struct {
	Plans []*committer.CommitPlan
	Err   error
}

func (f *Committer) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if f.Err != nil {
		return f.Err
	}
	f.Plans = append(f.Plans, plan)
	return nil
}

// Last returns the most recent plan, nil when nothing was committed.
func (f *Committer) Last() *committer.CommitPlan {
	if len(f.Plans) == 0 {
		return nil
	}
	return f.Plans[len(f.Plans)-1]
}

// ReadModel serves canned revenue totals and events.
type ReadModel struct {
	Totals  []contracts.CurrencyTotal
	Events  []contracts.EventDTO
	Filters []contracts.RevenueFilter
	Err     error
}

func (f *ReadModel) RevenueByCurrency(_ context.Context, filter contracts.RevenueFilter) ([]contracts.CurrencyTotal, error) {
	f.Filters = append(f.Filters, filter)
	return f.Totals, f.Err
}

func (f *ReadModel) ListEvents(_ context.Context, aggregateID string, limit int) ([]contracts.EventDTO, error) {
	var out []contracts.EventDTO
	for _, e := range f.Events {
		if aggregateID != "" && !strings.EqualFold(e.AggregateID, aggregateID) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, f.Err
}

// Time is the instant every pricingtest clock starts at.
var Time = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// Seed stores a 30-day subscription plan with the given NORMAL prices (whole units).
func (f *Entities) Seed(t testing.TB, clk clock.Clock, name string, normal map[domain.Currency]int64) *domain.PricedEntity {
	t.Helper()
	e, err := domain.NewPricedEntity(uuid.NewString(), domain.KindSubscriptionPlan, name, 30, 0, clk.Now(), clk)
	require.NoError(t, err)
	for c, amt := range normal {
		_, err := e.SetPrice(uuid.NewString(), c, domain.PriceNormal, domain.MustMoney(amt, 1))
		require.NoError(t, err)
	}
	f.Put(e)
	return e
}
