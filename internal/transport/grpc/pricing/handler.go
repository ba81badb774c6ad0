package pricing

import (
	"context"
	"math/big"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_events"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/price_history"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/quote_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/revenue_report"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/suggest_medical_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/apply_medical_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/checkout"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/create_entity"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_discount"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/update_loyalty"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/upsert_coupon"
	"github.com/light-bringer/pricing-service/internal/pkg/locale"
)

// Commands groups the write use cases.
type Commands struct {
	CreateEntity       *create_entity.Interactor
	SetPrices          *set_prices.Interactor
	ApplyMedicalPrices *apply_medical_prices.Interactor
	UpdateDiscount     *update_discount.Interactor
	UpdateLoyalty      *update_loyalty.Interactor
	UpsertCoupon       *upsert_coupon.Interactor
	Checkout           *checkout.Interactor
}

// Queries groups the read use cases.
type Queries struct {
	Quote         *quote_price.Query
	SuggestPrices *suggest_medical_prices.Query
	Revenue       *revenue_report.Query
	PriceHistory  *price_history.Query
	ListEvents    *list_events.Query
}

// Handler implements AdminServer.
// It's a thin coordinator that delegates to use cases and queries.
type Handler struct {
	cmd Commands
	qry Queries
}

// NewHandler creates a new admin handler.
func NewHandler(cmd Commands, qry Queries) *Handler {
	return &Handler{cmd: cmd, qry: qry}
}

var _ AdminServer = (*Handler)(nil)

// CreateEntity creates a subscription plan, programme or product with its initial prices.
func (h *Handler) CreateEntity(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}

	// 1. Validate and map request
	if err := requireFields(f, "kind", "name"); err != nil {
		return nil, err
	}
	duration, err := f.integer("durationDays")
	if err != nil {
		return nil, err
	}
	gift, err := f.integer("giftDays")
	if err != nil {
		return nil, err
	}
	discount, err := f.rat("discountPercent")
	if err != nil {
		return nil, err
	}
	inputs, err := priceInputs(f.list("prices"))
	if err != nil {
		return nil, err
	}

	appReq := &create_entity.Request{
		Kind:            f.str("kind"),
		Name:            f.str("name"),
		DurationDays:    duration,
		GiftDays:        gift,
		DiscountPercent: discount,
	}
	for _, p := range inputs {
		appReq.Prices = append(appReq.Prices, create_entity.PriceInput(p))
	}

	// 2. Call usecase
	id, err := h.cmd.CreateEntity.Execute(ctx, appReq)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	// 3. Return response
	return toStruct(map[string]any{"entityId": id})
}

// SetPrices writes and removes price records in one commit.
func (h *Handler) SetPrices(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId"); err != nil {
		return nil, err
	}
	inputs, err := priceInputs(f.list("prices"))
	if err != nil {
		return nil, err
	}

	appReq := &set_prices.Request{EntityID: f.str("entityId")}
	for _, p := range inputs {
		appReq.Prices = append(appReq.Prices, set_prices.PriceInput(p))
	}
	for i, v := range f.list("remove") {
		slot := fields{s: v.GetStructValue()}
		if slot.str("currency") == "" {
			return nil, invalidArg("remove[%d].currency is required", i)
		}
		appReq.Remove = append(appReq.Remove, set_prices.Slot{Currency: slot.str("currency"), Type: slot.str("type")})
	}
	if len(appReq.Prices) == 0 && len(appReq.Remove) == 0 {
		return nil, invalidArg("prices or remove must not be empty")
	}

	if err := h.cmd.SetPrices.Execute(ctx, appReq); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return toStruct(map[string]any{})
}

// SuggestMedicalPrices previews medical prices without storing them.
func (h *Handler) SuggestMedicalPrices(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId", "factorPercent"); err != nil {
		return nil, err
	}
	factor, err := f.rat("factorPercent")
	if err != nil {
		return nil, err
	}

	suggestions, err := h.qry.SuggestPrices.Execute(ctx, &suggest_medical_prices.Request{
		EntityID:      f.str("entityId"),
		FactorPercent: factor,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	out := make([]any, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, map[string]any{
			"currency": string(s.Currency),
			"normal":   money(s.Normal),
			"medical":  money(s.Medical),
			"current":  money(s.Current),
		})
	}
	return toStruct(map[string]any{"suggestions": out})
}

// ApplyMedicalPrices stores suggested medical prices, with admin overrides.
func (h *Handler) ApplyMedicalPrices(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId", "factorPercent"); err != nil {
		return nil, err
	}
	factor, err := f.rat("factorPercent")
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]*big.Rat)
	for code, v := range f.object("overrides").s.GetFields() {
		r, err := valueRat("overrides."+code, v)
		if err != nil {
			return nil, err
		}
		overrides[code] = r
	}

	resp, err := h.cmd.ApplyMedicalPrices.Execute(ctx, &apply_medical_prices.Request{
		EntityID:      f.str("entityId"),
		FactorPercent: factor,
		Overrides:     overrides,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	applied := make(map[string]any, len(resp.Applied))
	for c, m := range resp.Applied {
		applied[string(c)] = money(m)
	}
	return toStruct(map[string]any{"applied": applied})
}

// UpdateDiscount replaces the entity-level discount percentage.
func (h *Handler) UpdateDiscount(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId"); err != nil {
		return nil, err
	}
	pct, err := f.rat("percent")
	if err != nil {
		return nil, err
	}

	if err := h.cmd.UpdateDiscount.Execute(ctx, &update_discount.Request{EntityID: f.str("entityId"), Percent: pct}); err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return toStruct(map[string]any{})
}

// UpdateLoyalty enables or disables loyalty points for one tier.
func (h *Handler) UpdateLoyalty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId", "type"); err != nil {
		return nil, err
	}
	awarded, err := f.integer("pointsAwarded")
	if err != nil {
		return nil, err
	}
	required, err := f.integer("pointsRequired")
	if err != nil {
		return nil, err
	}

	err = h.cmd.UpdateLoyalty.Execute(ctx, &update_loyalty.Request{
		EntityID:       f.str("entityId"),
		Type:           f.str("type"),
		Enabled:        f.boolean("enabled"),
		PointsAwarded:  awarded,
		PointsRequired: required,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return toStruct(map[string]any{})
}

// UpsertCoupon creates or replaces a coupon.
func (h *Handler) UpsertCoupon(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "code", "percent"); err != nil {
		return nil, err
	}
	pct, err := f.rat("percent")
	if err != nil {
		return nil, err
	}
	expiresAt, err := f.instant("expiresAt")
	if err != nil {
		return nil, err
	}
	active := true
	if f.has("active") {
		active = f.boolean("active")
	}

	code, err := h.cmd.UpsertCoupon.Execute(ctx, &upsert_coupon.Request{
		Code:      f.str("code"),
		Percent:   pct,
		Active:    active,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return toStruct(map[string]any{"code": code})
}

// Quote prices an entity the way the storefront shows it.
func (h *Handler) Quote(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId", "currency"); err != nil {
		return nil, err
	}

	loc := locale.Parse(f.str("locale"))
	q, err := h.qry.Quote.Execute(ctx, &quote_price.Request{
		EntityID:   f.str("entityId"),
		Currency:   f.str("currency"),
		Type:       f.str("type"),
		CouponCode: f.str("couponCode"),
		Locale:     loc,
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	out := breakdownMap(q.Breakdown)
	out["entityId"] = q.EntityID
	out["currency"] = string(q.Currency)
	out["type"] = string(q.Type)
	out["discountPercent"] = q.EntityDiscount.String()
	out["couponCode"] = q.CouponCode
	out["formattedBase"] = q.FormattedBase
	out["formattedFinal"] = q.FormattedFinal
	out["period"] = q.Period
	out["giftPeriod"] = q.GiftPeriod
	out["loyalty"] = loyaltyMap(q.Loyalty)
	return toStruct(out)
}

// Checkout records an immutable purchase snapshot.
func (h *Handler) Checkout(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId", "userId", "currency"); err != nil {
		return nil, err
	}

	snap, err := h.cmd.Checkout.Execute(ctx, &checkout.Request{
		EntityID:   f.str("entityId"),
		UserID:     f.str("userId"),
		Currency:   f.str("currency"),
		Type:       f.str("type"),
		CouponCode: f.str("couponCode"),
	})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}
	return toStruct(purchaseMap(snap))
}

// RevenueReport sums purchases per currency and in dollars.
func (h *Handler) RevenueReport(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	req := &revenue_report.Request{}
	from, err := f.instant("from")
	if err != nil {
		return nil, err
	}
	to, err := f.instant("to")
	if err != nil {
		return nil, err
	}
	if from != nil {
		req.From = *from
	}
	if to != nil {
		req.To = *to
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, invalidArg("to must not be before from")
	}

	resp, err := h.qry.Revenue.Execute(ctx, req)
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	lines := make([]any, 0, len(resp.Lines))
	for _, l := range resp.Lines {
		lines = append(lines, map[string]any{
			"currency":  string(l.Currency),
			"total":     money(l.Total),
			"totalUsd":  money(l.TotalUSD),
			"purchases": l.Purchases,
		})
	}
	skipped := append([]string(nil), resp.Skipped...)
	sort.Strings(skipped)

	return toStruct(map[string]any{
		"lines":          lines,
		"totalUsd":       money(resp.TotalUSD),
		"purchases":      resp.Purchases,
		"skipped":        anyStrings(skipped),
		"ratesUpdatedAt": timestamp(resp.RatesAt),
		"source":         string(resp.Source),
		"stale":          resp.Stale,
	})
}

// PriceHistory lists current and superseded price records of an entity.
func (h *Handler) PriceHistory(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	if err := requireFields(f, "entityId"); err != nil {
		return nil, err
	}
	limit, err := f.integer("limit")
	if err != nil {
		return nil, err
	}

	records, err := h.qry.PriceHistory.Execute(ctx, &price_history.Request{EntityID: f.str("entityId"), Limit: int(limit)})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	out := make([]any, 0, len(records))
	for _, r := range records {
		out = append(out, priceRecordMap(r))
	}
	return toStruct(map[string]any{"records": out})
}

// ListEvents lists outbox events, optionally for one aggregate.
func (h *Handler) ListEvents(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f := fields{s: in}
	limit, err := f.integer("limit")
	if err != nil {
		return nil, err
	}

	events, err := h.qry.ListEvents.Execute(ctx, &list_events.Request{AggregateID: f.str("aggregateId"), Limit: int(limit)})
	if err != nil {
		return nil, mapDomainErrorToGRPC(err)
	}

	out := make([]any, 0, len(events))
	for _, e := range events {
		out = append(out, eventMap(e))
	}
	return toStruct(map[string]any{"events": out})
}

type priceInput struct {
	Currency string
	Type     string
	Amount   *big.Rat
}

func priceInputs(values []*structpb.Value) ([]priceInput, error) {
	out := make([]priceInput, 0, len(values))
	for i, v := range values {
		p := fields{s: v.GetStructValue()}
		if p.str("currency") == "" {
			return nil, invalidArg("prices[%d].currency is required", i)
		}
		amt, err := p.rat("amount")
		if err != nil {
			return nil, err
		}
		if amt == nil {
			return nil, invalidArg("prices[%d].amount is required", i)
		}
		out = append(out, priceInput{Currency: p.str("currency"), Type: p.str("type"), Amount: amt})
	}
	return out, nil
}
