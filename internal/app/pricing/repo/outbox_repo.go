package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	client *spanner.Client
	model  *m_outbox.Model
}

func NewOutboxRepo(client *spanner.Client) contracts.OutboxRepository {
	return &OutboxRepo{client: client, model: m_outbox.NewModel()}
}

func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	return r.model.InsertMut(&m_outbox.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     spanner.NullJSON{Value: json.RawMessage(event.Payload), Valid: event.Payload != ""},
		Status:      event.Status,
	})
}

func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_outbox.StatusPending,
	}
}

// DeleteProcessedBefore removes events in the given terminal status processed before cutoff,
// using partitioned DML.
func (r *OutboxRepo) DeleteProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error) {
	n, err := r.client.PartitionedUpdate(ctx, processedBefore("DELETE FROM "+m_outbox.TableName, status, cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s events: %w", status, err)
	}
	return n, nil
}

// CountProcessedBefore counts what DeleteProcessedBefore would remove.
func (r *OutboxRepo) CountProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error) {
	iter := r.client.Single().Query(ctx, processedBefore("SELECT COUNT(*) FROM "+m_outbox.TableName, status, cutoff))
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s events: %w", status, err)
	}
	var n int64
	if err := row.Columns(&n); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return n, nil
}

func processedBefore(prefix, status string, cutoff time.Time) spanner.Statement {
	return spanner.Statement{
		SQL: fmt.Sprintf("%s WHERE %s = @status AND %s < @cutoff", prefix, m_outbox.Status, m_outbox.ProcessedAt),
		Params: map[string]interface{}{
			"status": status,
			"cutoff": cutoff,
		},
	}
}
