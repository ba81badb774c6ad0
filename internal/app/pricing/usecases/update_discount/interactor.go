package update_discount

import (
	"context"
	"fmt"
	"math/big"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request sets the entity-level discount. 0 removes it.
type Request struct {
	EntityID string
	Percent  *big.Rat
}

// Interactor handles the update discount use case.
type Interactor struct {
	entities  contracts.EntityRepository
	outbox    contracts.OutboxRepository
	committer contracts.Committer
}

func NewInteractor(entities contracts.EntityRepository, outbox contracts.OutboxRepository, committer contracts.Committer) *Interactor {
	return &Interactor{entities: entities, outbox: outbox, committer: committer}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	pct, err := domain.NewPercentage(req.Percent)
	if err != nil {
		return err
	}

	entity, err := i.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return err
	}
	defer entity.ClearEvents()

	entity.SetDiscount(pct)

	plan := committer.NewPlan()
	plan.Add(i.entities.UpdateMut(entity))
	events, err := contracts.OutboxMutations(i.outbox, entity.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	if plan.IsEmpty() {
		return nil
	}
	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to update discount: %w", err)
	}
	return nil
}
