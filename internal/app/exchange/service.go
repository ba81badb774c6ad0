package exchange

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
)

// ErrUnknownRate is returned when no X->USD rate exists for a currency.
var ErrUnknownRate = errors.New("no exchange rate for currency")

// Source tells where a rate snapshot came from.
type Source string

const (
	SourceLive      Source = "live"
	SourceLastKnown Source = "last_known"
	SourceFallback  Source = "fallback"
)

// approximateUSDRates are used only when no live rate was ever fetched.
var approximateUSDRates = map[domain.Currency]*big.Rat{
	domain.USD: big.NewRat(1, 1),
	domain.EGP: big.NewRat(485, 10),
	domain.SAR: big.NewRat(375, 100),
	domain.AED: big.NewRat(36725, 10000),
}

// Snapshot is a set of X->USD rates. Stale is set when the latest refresh failed.
type Snapshot struct {
	ToUSD     map[domain.Currency]*big.Rat
	UpdatedAt time.Time
	FetchedAt time.Time
	Source    Source
	Stale     bool
}

// Rate returns the X->USD rate for c.
func (s Snapshot) Rate(c domain.Currency) (*big.Rat, bool) {
	r, ok := s.ToUSD[c]
	if !ok {
		return nil, false
	}
	return new(big.Rat).Set(r), true
}

// Service keeps exchange rates in memory for the process lifetime and refreshes on demand.
type Service struct {
	fetcher Fetcher
	clock   clock.Clock
	logger  *zap.Logger
	metrics *metrics.Metrics

	group singleflight.Group
	mu    sync.RWMutex
	last  *Snapshot
}

func NewService(fetcher Fetcher, clk clock.Clock, logger *zap.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, clock: clk, logger: logger, metrics: m}
}

// Rates returns the cached snapshot, fetching once if nothing is cached yet.
func (s *Service) Rates(ctx context.Context) Snapshot {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last != nil {
		return *last
	}
	return s.Refresh(ctx)
}

// Refresh fetches live rates. Concurrent callers share one request. On failure the
// last known rates are returned, or the built-in approximations, marked stale.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	v, _, _ := s.group.Do("refresh", func() (interface{}, error) {
		return s.refresh(context.WithoutCancel(ctx)), nil
	})
	return v.(Snapshot)
}

func (s *Service) refresh(ctx context.Context) Snapshot {
	usd, updated, err := s.fetcher.FetchUSDRates(ctx)
	if err == nil {
		var snap Snapshot
		snap, err = s.invert(usd, updated)
		if err == nil {
			s.mu.Lock()
			s.last = &snap
			s.mu.Unlock()
			s.metrics.ObserveExchangeRefresh(true)
			return snap
		}
	}

	s.metrics.ObserveExchangeRefresh(false)

	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last != nil {
		s.logger.Warn("exchange rate refresh failed, serving last known rates",
			zap.Error(err),
			zap.Time("updated_at", last.UpdatedAt),
		)
		snap := *last
		snap.Source = SourceLastKnown
		snap.Stale = true
		return snap
	}

	s.logger.Warn("exchange rate refresh failed, serving approximate rates", zap.Error(err))
	return s.approximate()
}

// invert turns USD->X rates into X->USD rates for the registry's currencies.
func (s *Service) invert(usd map[string]*big.Rat, updated time.Time) (Snapshot, error) {
	now := s.clock.Now()
	if updated.IsZero() {
		updated = now
	}
	out := make(map[domain.Currency]*big.Rat, len(usd))
	for code, rate := range usd {
		c, err := domain.ParseCurrency(code)
		if err != nil {
			continue
		}
		if rate == nil || rate.Sign() <= 0 {
			return Snapshot{}, fmt.Errorf("non-positive rate for %s", code)
		}
		out[c] = new(big.Rat).Inv(rate)
	}
	for _, c := range domain.PricingCurrencies() {
		if _, ok := out[c]; !ok {
			return Snapshot{}, fmt.Errorf("%w: %s missing from live rates", ErrUnknownRate, c)
		}
	}
	return Snapshot{ToUSD: out, UpdatedAt: updated, FetchedAt: now, Source: SourceLive}, nil
}

func (s *Service) approximate() Snapshot {
	out := make(map[domain.Currency]*big.Rat, len(approximateUSDRates))
	for c, r := range approximateUSDRates {
		out[c] = new(big.Rat).Inv(r)
	}
	return Snapshot{ToUSD: out, FetchedAt: s.clock.Now(), Source: SourceFallback, Stale: true}
}

// ToUSD converts m from c to dollars using the current snapshot.
func (s *Service) ToUSD(ctx context.Context, m *domain.Money, c domain.Currency) (*domain.Money, Snapshot, error) {
	snap := s.Rates(ctx)
	usd, err := Convert(snap, m, c)
	return usd, snap, err
}

// Convert converts m from c to dollars with the given snapshot.
func Convert(snap Snapshot, m *domain.Money, c domain.Currency) (*domain.Money, error) {
	rate, ok := snap.Rate(c)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRate, c)
	}
	return m.MultiplyByRat(rate), nil
}
