package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// OutboxEvent is a domain event enriched for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
}

// OutboxRepository persists domain events in the same transaction as the aggregate.
type OutboxRepository interface {
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent wraps a domain event and its JSON payload with an id and pending status
	EnrichEvent(event domain.DomainEvent, payload string) *OutboxEvent

	// DeleteProcessedBefore removes events in status (completed or failed) processed before cutoff
	// and returns how many went
	DeleteProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error)
	CountProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error)
}

// OutboxMutations serializes events to JSON and returns one insert mutation per event.
func OutboxMutations(repo OutboxRepository, events []domain.DomainEvent) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize %s event: %w", event.EventType(), err)
		}
		muts = append(muts, repo.InsertMut(repo.EnrichEvent(event, string(payload))))
	}
	return muts, nil
}
