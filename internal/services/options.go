package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/exchange"
	"github.com/light-bringer/pricing-service/internal/app/location"
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
	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/pkg/httpclient"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
	"github.com/light-bringer/pricing-service/internal/pkg/redisclient"
	"github.com/light-bringer/pricing-service/internal/transport/grpc/pricing"
	httptransport "github.com/light-bringer/pricing-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	RedisClient   *redisclient.Client
	Metrics       *metrics.Metrics

	AdminHandler *pricing.Handler
	HTTPHandlers httptransport.Handlers

	logger *zap.Logger
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	opts := &ServiceOptions{SpannerClient: spannerClient, logger: logger}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	opts.Metrics = metrics.New()

	store, err := opts.locationStore(ctx, cfg, clk)
	if err != nil {
		opts.Close()
		return nil, err
	}

	// 3. Create repositories
	entityRepo := repo.NewEntityRepo(spannerClient, clk)
	priceRepo := repo.NewPriceRepo(spannerClient)
	couponRepo := repo.NewCouponRepo(spannerClient)
	purchaseRepo := repo.NewPurchaseRepo()
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	readModel := repo.NewReadModel(spannerClient)

	// 4. Create external services
	geoHTTP := httpclient.New(cfg.Location.Timeout)
	resolver := location.NewResolver(
		store,
		location.NewIPAPIClient(cfg.Location.IPURL, geoHTTP),
		location.NewBigDataCloudClient(cfg.Location.ReverseURL, geoHTTP),
		clk,
		cfg.Location.CacheTTL,
		logger.Named("location"),
		opts.Metrics,
	)
	rates := exchange.NewService(
		exchange.NewAPIClient(cfg.Exchange.URL, httpclient.New(cfg.Exchange.Timeout)),
		clk,
		logger.Named("exchange"),
		opts.Metrics,
	)

	// 5. Create command use cases (write operations)
	commands := pricing.Commands{
		CreateEntity:       create_entity.NewInteractor(entityRepo, priceRepo, outboxRepo, comm, clk),
		SetPrices:          set_prices.NewInteractor(entityRepo, priceRepo, outboxRepo, comm),
		ApplyMedicalPrices: apply_medical_prices.NewInteractor(entityRepo, priceRepo, outboxRepo, comm),
		UpdateDiscount:     update_discount.NewInteractor(entityRepo, outboxRepo, comm),
		UpdateLoyalty:      update_loyalty.NewInteractor(entityRepo, outboxRepo, comm),
		UpsertCoupon:       upsert_coupon.NewInteractor(couponRepo, comm, clk),
		Checkout:           checkout.NewInteractor(entityRepo, couponRepo, purchaseRepo, outboxRepo, comm, clk),
	}

	// 6. Create query use cases (read operations)
	queries := pricing.Queries{
		Quote:         quote_price.NewQuery(entityRepo, couponRepo, clk, opts.Metrics),
		SuggestPrices: suggest_medical_prices.NewQuery(entityRepo),
		Revenue:       revenue_report.NewQuery(readModel, rates, logger.Named("revenue")),
		PriceHistory:  price_history.NewQuery(entityRepo, priceRepo),
		ListEvents:    list_events.NewQuery(readModel),
	}

	// 7. Create transport handlers
	opts.AdminHandler = pricing.NewHandler(commands, queries)

	v := httptransport.NewValidator()
	opts.HTTPHandlers = httptransport.Handlers{
		Location: httptransport.NewLocationHandler(resolver, v, logger),
		Quote:    httptransport.NewQuoteHandler(queries.Quote, v, logger),
		Exchange: httptransport.NewExchangeHandler(rates, v, logger),
		Catalog:  httptransport.NewCatalogHandler(v),
		Events:   httptransport.NewEventsHandler(queries.ListEvents, logger),
	}

	return opts, nil
}

// locationStore picks Redis when REDIS_ADDR is configured, otherwise a process-local map.
func (s *ServiceOptions) locationStore(ctx context.Context, cfg *config.Config, clk clock.Clock) (location.Store, error) {
	if cfg.Redis.Addr == "" {
		s.logger.Info("location cache: in-memory")
		return location.NewMemoryStore(clk), nil
	}
	rdb, err := redisclient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis client: %w", err)
	}
	s.RedisClient = rdb
	return location.NewRedisStore(rdb), nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.RedisClient != nil {
		if err := s.RedisClient.Close(); err != nil {
			s.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
