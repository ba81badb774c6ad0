package revenue_report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/exchange"
	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// RateSource provides the X->USD snapshot used for conversion.
type RateSource interface {
	Rates(ctx context.Context) exchange.Snapshot
}

type Request struct {
	From time.Time
	To   time.Time
}

// Line is the revenue of one currency, in that currency and in dollars.
type Line struct {
	Currency  domain.Currency
	Total     *domain.Money
	TotalUSD  *domain.Money
	Purchases int64
}

type Response struct {
	Lines     []Line
	TotalUSD  *domain.Money
	Purchases int64
	// Skipped lists currencies that had sales but no usable rate.
	Skipped []string
	RatesAt time.Time
	Source  exchange.Source
	Stale   bool
}

// Query aggregates purchase snapshots into a dollar revenue figure.
type Query struct {
	readModel contracts.ReadModel
	rates     RateSource
	logger    *zap.Logger
}

func NewQuery(readModel contracts.ReadModel, rates RateSource, logger *zap.Logger) *Query {
	return &Query{readModel: readModel, rates: rates, logger: logger}
}

func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if !req.From.IsZero() && !req.To.IsZero() && req.To.Before(req.From) {
		return nil, fmt.Errorf("invalid range: to %s is before from %s", req.To.Format(time.RFC3339), req.From.Format(time.RFC3339))
	}

	totals, err := q.readModel.RevenueByCurrency(ctx, contracts.RevenueFilter{From: req.From, To: req.To})
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	snap := q.rates.Rates(ctx)
	resp := &Response{
		TotalUSD: domain.Zero(),
		RatesAt:  snap.UpdatedAt,
		Source:   snap.Source,
		Stale:    snap.Stale,
	}

	for _, t := range totals {
		currency, err := domain.ParseCurrency(t.Currency)
		if err != nil {
			resp.Skipped = append(resp.Skipped, t.Currency)
			q.logger.Warn("revenue in unknown currency", zap.String("currency", t.Currency))
			continue
		}
		total := domain.NewMoneyFromRat(t.Total)
		usd, err := exchange.Convert(snap, total, currency)
		if errors.Is(err, exchange.ErrUnknownRate) {
			resp.Skipped = append(resp.Skipped, t.Currency)
			q.logger.Warn("no rate for revenue currency", zap.String("currency", t.Currency))
			continue
		}
		if err != nil {
			return nil, err
		}

		usd = usd.Round2()
		resp.Lines = append(resp.Lines, Line{
			Currency:  currency,
			Total:     total,
			TotalUSD:  usd,
			Purchases: t.Purchases,
		})
		resp.TotalUSD = resp.TotalUSD.Add(usd)
		resp.Purchases += t.Purchases
	}

	sort.Slice(resp.Lines, func(i, j int) bool { return resp.Lines[i].Currency < resp.Lines[j].Currency })
	return resp, nil
}
