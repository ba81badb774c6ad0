package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// EntityRepository persists priced entities together with their current prices.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type EntityRepository interface {
	// InsertMut creates a mutation for inserting a new entity row
	InsertMut(e *domain.PricedEntity) *spanner.Mutation

	// UpdateMut creates a mutation for the dirty entity columns, nil when nothing changed
	UpdateMut(e *domain.PricedEntity) *spanner.Mutation

	// GetByID loads the entity and its current (non-superseded) prices
	GetByID(ctx context.Context, entityID string) (*domain.PricedEntity, error)
}
