package price_history

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type Request struct {
	EntityID string
	Limit    int
}

// Query lists every price record of an entity, superseded ones included.
type Query struct {
	entities contracts.EntityRepository
	prices   contracts.PriceRepository
}

func NewQuery(entities contracts.EntityRepository, prices contracts.PriceRepository) *Query {
	return &Query{entities: entities, prices: prices}
}

func (q *Query) Execute(ctx context.Context, req *Request) ([]contracts.PriceRecord, error) {
	if req.EntityID == "" {
		return nil, domain.ErrEntityNotFound
	}
	// Existence check so an unknown id is NotFound rather than an empty list.
	if _, err := q.entities.GetByID(ctx, req.EntityID); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return q.prices.History(ctx, req.EntityID, limit)
}
