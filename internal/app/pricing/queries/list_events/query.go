package list_events

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
)

// Request filters outbox events by aggregate. An empty AggregateID lists all.
type Request struct {
	AggregateID string
	Limit       int // default 100, max 1000
}

// Query handles the list events query use case.
type Query struct {
	readModel contracts.ReadModel
}

func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns events newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]contracts.EventDTO, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	return q.readModel.ListEvents(ctx, req.AggregateID, limit)
}
