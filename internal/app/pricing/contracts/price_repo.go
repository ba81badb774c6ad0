package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceRepository persists immutable price records.
type PriceRepository interface {
	InsertMut(entityID string, p *domain.Price) *spanner.Mutation

	// SupersedeMut stamps superseded_at on a record replaced by a newer one
	SupersedeMut(entityID string, p *domain.Price) *spanner.Mutation

	// History lists every record of an entity, newest first, including superseded ones
	History(ctx context.Context, entityID string, limit int) ([]PriceRecord, error)
}

// PriceRecord is a stored price with its supersession time.
type PriceRecord struct {
	Price        *domain.Price
	SupersededAt *time.Time
}

// PriceMutations turns the pending price changes of an entity into mutations.
func PriceMutations(repo PriceRepository, e *domain.PricedEntity) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(e.SupersededPrices())+len(e.NewPrices()))
	for _, p := range e.SupersededPrices() {
		muts = append(muts, repo.SupersedeMut(e.ID(), p))
	}
	for _, p := range e.NewPrices() {
		muts = append(muts, repo.InsertMut(e.ID(), p))
	}
	return muts
}
