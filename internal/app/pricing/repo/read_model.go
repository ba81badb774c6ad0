package repo

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/models/m_purchase"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

func NewReadModel(client *spanner.Client) contracts.ReadModel {
	return &ReadModelImpl{client: client}
}

// RevenueByCurrency sums purchase finals per currency.
func (rm *ReadModelImpl) RevenueByCurrency(ctx context.Context, filter contracts.RevenueFilter) ([]contracts.CurrencyTotal, error) {
	q := query.From(m_purchase.TableName).
		Select(m_purchase.Currency, "SUM("+m_purchase.FinalAmount+") AS total", "COUNT(*) AS purchases")
	if !filter.From.IsZero() {
		q = q.Where(query.Gte(m_purchase.CreatedAt, filter.From))
	}
	if !filter.To.IsZero() {
		q = q.Where(query.Lt(m_purchase.CreatedAt, filter.To))
	}
	stmt := q.GroupBy(m_purchase.Currency).OrderBy(m_purchase.Currency, query.Asc).Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var totals []contracts.CurrencyTotal
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate revenue: %w", err)
		}

		var (
			currency  string
			total     big.Rat
			purchases int64
		)
		if err := row.Columns(&currency, &total, &purchases); err != nil {
			return nil, fmt.Errorf("failed to parse revenue row: %w", err)
		}
		totals = append(totals, contracts.CurrencyTotal{Currency: currency, Total: &total, Purchases: purchases})
	}
	return totals, nil
}

// ListEvents lists outbox events, newest first, optionally for a single aggregate.
func (rm *ReadModelImpl) ListEvents(ctx context.Context, aggregateID string, limit int) ([]contracts.EventDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := query.From(m_outbox.TableName).Select(m_outbox.Columns...)
	if aggregateID != "" {
		q = q.Where(query.Eq(m_outbox.AggregateID, aggregateID))
	}
	stmt := q.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(int64(limit)).Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var events []contracts.EventDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate events: %w", err)
		}
		var data m_outbox.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		payload := ""
		if data.Payload.Valid {
			payload = data.Payload.String()
		}
		events = append(events, contracts.EventDTO{
			EventID:     data.EventID,
			EventType:   data.EventType,
			AggregateID: data.AggregateID,
			Payload:     payload,
			Status:      data.Status,
			CreatedAt:   data.CreatedAt,
		})
	}
	return events, nil
}
