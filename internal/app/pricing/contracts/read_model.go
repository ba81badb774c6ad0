package contracts

import (
	"context"
	"math/big"
	"time"
)

// CurrencyTotal is the sum of purchase finals in one currency.
type CurrencyTotal struct {
	Currency  string
	Total     *big.Rat
	Purchases int64
}

// RevenueFilter bounds the purchases summed by the revenue report. Zero times are open ends.
type RevenueFilter struct {
	From time.Time
	To   time.Time
}

// EventDTO is an outbox event as listed for admins.
type EventDTO struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string
	Status      string
	CreatedAt   time.Time
}

// ReadModel serves queries that bypass the domain layer.
type ReadModel interface {
	RevenueByCurrency(ctx context.Context, filter RevenueFilter) ([]CurrencyTotal, error)
	ListEvents(ctx context.Context, aggregateID string, limit int) ([]EventDTO, error)
}
