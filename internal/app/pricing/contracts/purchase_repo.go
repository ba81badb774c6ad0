package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PurchaseRepository stores checkout snapshots. Snapshots are append-only.
type PurchaseRepository interface {
	InsertMut(p *domain.PurchaseSnapshot) *spanner.Mutation
}
