package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/config"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

// Options for the outbox cleanup job
type Options struct {
	SpannerDB              string
	CompletedRetentionDays int
	FailedRetentionDays    int
	DryRun                 bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := Options{}
	flag.StringVar(&opts.SpannerDB, "database", cfg.SpannerDB, "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&opts.CompletedRetentionDays, "completed-retention", 30, "Retention days for completed events")
	flag.IntVar(&opts.FailedRetentionDays, "failed-retention", 90, "Retention days for failed events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if opts.CompletedRetentionDays < 1 || opts.FailedRetentionDays < 1 {
		zlog.Fatal("retention must be at least one day")
	}

	if err := cleanupOutbox(context.Background(), opts, zlog); err != nil {
		zlog.Fatal("cleanup failed", zap.Error(err))
	}
	zlog.Info("cleanup completed")
}

func cleanupOutbox(ctx context.Context, opts Options, zlog *zap.Logger) error {
	client, err := spanner.NewClient(ctx, opts.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	outbox := repo.NewOutboxRepo(client)
	now := time.Now().UTC()
	cutoffs := []struct {
		status string
		cutoff time.Time
	}{
		{m_outbox.StatusCompleted, now.AddDate(0, 0, -opts.CompletedRetentionDays)},
		{m_outbox.StatusFailed, now.AddDate(0, 0, -opts.FailedRetentionDays)},
	}

	var total int64
	for _, c := range cutoffs {
		clog := zlog.With(zap.String("status", c.status), zap.Time("cutoff", c.cutoff))

		if opts.DryRun {
			n, err := outbox.CountProcessedBefore(ctx, c.status, c.cutoff)
			if err != nil {
				return err
			}
			clog.Info("would delete events", zap.Int64("count", n))
			total += n
			continue
		}

		n, err := outbox.DeleteProcessedBefore(ctx, c.status, c.cutoff)
		if err != nil {
			return err
		}
		clog.Info("deleted events", zap.Int64("count", n))
		total += n
	}

	zlog.Info("outbox cleanup finished", zap.Bool("dry_run", opts.DryRun), zap.Int64("total", total))
	return nil
}
