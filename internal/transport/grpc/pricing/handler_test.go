package pricing

import (
	"context"
	"math/big"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/light-bringer/pricing-service/internal/app/exchange"
	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/quote_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/revenue_report"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/suggest_medical_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/apply_medical_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/checkout"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/create_entity"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_discount"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_loyalty"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/upsert_coupon"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

type fixedRates exchange.Snapshot

func (f fixedRates) Rates(context.Context) exchange.Snapshot { return exchange.Snapshot(f) }

type fixture struct {
	client    *Client
	entities  *pricingtest.Entities
	committer *pricingtest.Committer
	entity    *domain.PricedEntity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	clk := clock.NewMockClock(pricingtest.Time)

	entities := pricingtest.NewEntities(clk)
	e := entities.Seed(t, clk, "Monthly", map[domain.Currency]int64{domain.EGP: 1000, domain.SAR: 100})
	prices := pricingtest.NewPrices()
	prices.Records[e.ID()] = []contracts.PriceRecord{{Price: domain.ReconstructPrice("p1", domain.EGP, domain.PriceNormal, domain.MustMoney(1000, 1), pricingtest.Time)}}
	coupon, err := domain.NewCoupon("SAVE10", domain.MustPercentage(10), true, nil)
	require.NoError(t, err)
	coupons := pricingtest.NewCoupons(coupon)
	outbox := pricingtest.NewOutbox()
	comm := &pricingtest.Committer{}
	readModel := &pricingtest.ReadModel{
		Totals: []contracts.CurrencyTotal{{Currency: "EGP", Total: big.NewRat(5000, 1), Purchases: 5}},
		Events: []contracts.EventDTO{{EventID: "ev1", EventType: "price.set", AggregateID: e.ID(), Payload: "{}", Status: "pending", CreatedAt: pricingtest.Time}},
	}
	rates := fixedRates{ToUSD: map[domain.Currency]*big.Rat{domain.EGP: big.NewRat(1, 50), domain.USD: big.NewRat(1, 1)}, UpdatedAt: pricingtest.Time, Source: exchange.SourceLive}

	h := NewHandler(Commands{
		CreateEntity:       create_entity.NewInteractor(entities, prices, outbox, comm, clk),
		SetPrices:          set_prices.NewInteractor(entities, prices, outbox, comm),
		ApplyMedicalPrices: apply_medical_prices.NewInteractor(entities, prices, outbox, comm),
		UpdateDiscount:     update_discount.NewInteractor(entities, outbox, comm),
		UpdateLoyalty:      update_loyalty.NewInteractor(entities, outbox, comm),
		UpsertCoupon:       upsert_coupon.NewInteractor(coupons, comm, clk),
		Checkout:           checkout.NewInteractor(entities, coupons, repo.NewPurchaseRepo(), outbox, comm, clk),
	}, Queries{
		Quote:         quote_price.NewQuery(entities, coupons, clk, nil),
		SuggestPrices: suggest_medical_prices.NewQuery(entities),
		Revenue:       revenue_report.NewQuery(readModel, rates, logger),
		PriceHistory:  price_history.NewQuery(entities, prices),
		ListEvents:    list_events.NewQuery(readModel),
	})

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(RecoveryInterceptor(logger), LoggingInterceptor(logger)))
	Register(srv, h)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &fixture{client: NewClient(conn), entities: entities, committer: comm, entity: e}
}

func (fx *fixture) call(t *testing.T, method string, req map[string]any) (map[string]any, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := fx.client.Call(ctx, method, req)
	if err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}

func TestAdmin_EntityLifecycle(t *testing.T) {
	fx := newFixture(t)

	t.Run("create", func(t *testing.T) {
		out, err := fx.call(t, "CreateEntity", map[string]any{
			"kind":            "programme",
			"name":            "Strength 6 weeks",
			"durationDays":    42,
			"discountPercent": "15",
			"prices": []any{
				map[string]any{"currency": "EGP", "amount": "1999.99"},
				map[string]any{"currency": "USD", "amount": 40},
			},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out["entityId"])
		assert.Len(t, fx.committer.Plans, 1)
	})

	t.Run("set prices then quote", func(t *testing.T) {
		_, err := fx.call(t, "SetPrices", map[string]any{
			"entityId": fx.entity.ID(),
			"prices":   []any{map[string]any{"currency": "EGP", "type": "NORMAL", "amount": map[string]any{"$numberDecimal": "1200"}}},
		})
		require.NoError(t, err)

		out, err := fx.call(t, "Quote", map[string]any{"entityId": fx.entity.ID(), "currency": "EGP", "couponCode": "save10"})
		require.NoError(t, err)
		assert.Equal(t, "1200.00", out["base"])
		assert.Equal(t, "1080.00", out["final"])
		assert.Equal(t, "1080 EGP", out["formattedFinal"])
		assert.Equal(t, "1 month", out["period"])
		assert.Nil(t, out["loyalty"])
	})

	t.Run("suggest and apply medical prices", func(t *testing.T) {
		out, err := fx.call(t, "SuggestMedicalPrices", map[string]any{"entityId": fx.entity.ID(), "factorPercent": 50})
		require.NoError(t, err)
		suggestions := out["suggestions"].([]any)
		require.Len(t, suggestions, 2)
		first := suggestions[0].(map[string]any)
		assert.Equal(t, "EGP", first["currency"])
		assert.Equal(t, "1800.00", first["medical"])
		assert.Nil(t, first["current"])

		out, err = fx.call(t, "ApplyMedicalPrices", map[string]any{
			"entityId":      fx.entity.ID(),
			"factorPercent": "50",
			"overrides":     map[string]any{"SAR": "149.99"},
		})
		require.NoError(t, err)
		applied := out["applied"].(map[string]any)
		assert.Equal(t, "1800.00", applied["EGP"])
		assert.Equal(t, "149.99", applied["SAR"])
	})

	t.Run("discount, loyalty and checkout", func(t *testing.T) {
		_, err := fx.call(t, "UpdateDiscount", map[string]any{"entityId": fx.entity.ID(), "percent": 20})
		require.NoError(t, err)
		_, err = fx.call(t, "UpdateLoyalty", map[string]any{"entityId": fx.entity.ID(), "type": "MEDICAL", "enabled": true, "pointsAwarded": 30})
		require.NoError(t, err)

		out, err := fx.call(t, "Checkout", map[string]any{"entityId": fx.entity.ID(), "userId": "user-7", "currency": "SAR", "type": "MEDICAL"})
		require.NoError(t, err)
		assert.Equal(t, "149.99", out["base"])
		assert.Equal(t, "30.00", out["entityDiscount"])
		assert.Equal(t, "119.99", out["final"])
		assert.Equal(t, float64(30), out["pointsAwarded"])
		assert.Equal(t, "2026-03-01T09:00:00Z", out["createdAt"])
	})

	t.Run("coupon", func(t *testing.T) {
		out, err := fx.call(t, "UpsertCoupon", map[string]any{"code": "ramadan", "percent": "12.5", "expiresAt": "2026-04-01T00:00:00Z"})
		require.NoError(t, err)
		assert.Equal(t, "RAMADAN", out["code"])
	})
}

func TestAdmin_Reports(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.call(t, "RevenueReport", map[string]any{"from": "2026-01-01T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, "100.00", out["totalUsd"])
	assert.Equal(t, float64(5), out["purchases"])
	assert.Equal(t, false, out["stale"])
	lines := out["lines"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, "EGP", lines[0].(map[string]any)["currency"])

	out, err = fx.call(t, "PriceHistory", map[string]any{"entityId": fx.entity.ID()})
	require.NoError(t, err)
	records := out["records"].([]any)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].(map[string]any)["supersededAt"])

	out, err = fx.call(t, "ListEvents", map[string]any{"aggregateId": fx.entity.ID(), "limit": 10})
	require.NoError(t, err)
	assert.Len(t, out["events"].([]any), 1)
}

func TestAdmin_ErrorCodes(t *testing.T) {
	fx := newFixture(t)

	cases := []struct {
		name   string
		method string
		req    map[string]any
		code   codes.Code
	}{
		{"missing name", "CreateEntity", map[string]any{"kind": "product"}, codes.InvalidArgument},
		{"bad kind", "CreateEntity", map[string]any{"kind": "class", "name": "x"}, codes.InvalidArgument},
		{"fractional days", "CreateEntity", map[string]any{"kind": "product", "name": "x", "durationDays": 1.5}, codes.InvalidArgument},
		{"bad amount", "SetPrices", map[string]any{"entityId": fx.entity.ID(), "prices": []any{map[string]any{"currency": "EGP", "amount": "abc"}}}, codes.InvalidArgument},
		{"empty edit", "SetPrices", map[string]any{"entityId": fx.entity.ID()}, codes.InvalidArgument},
		{"unknown entity", "UpdateDiscount", map[string]any{"entityId": "nope", "percent": 5}, codes.NotFound},
		{"discount range", "UpdateDiscount", map[string]any{"entityId": fx.entity.ID(), "percent": 120}, codes.InvalidArgument},
		{"medical without normal", "SetPrices", map[string]any{"entityId": fx.entity.ID(), "prices": []any{map[string]any{"currency": "USD", "type": "MEDICAL", "amount": 5}}}, codes.FailedPrecondition},
		{"unavailable price", "Quote", map[string]any{"entityId": fx.entity.ID(), "currency": "AED"}, codes.NotFound},
		{"no user", "Checkout", map[string]any{"entityId": fx.entity.ID(), "currency": "EGP"}, codes.InvalidArgument},
		{"bad timestamp", "UpsertCoupon", map[string]any{"code": "X", "percent": 5, "expiresAt": "tomorrow"}, codes.InvalidArgument},
		{"reversed range", "RevenueReport", map[string]any{"from": "2026-02-01T00:00:00Z", "to": "2026-01-01T00:00:00Z"}, codes.InvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.call(t, tc.method, tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.code, status.Code(err), err.Error())
		})
	}
}
