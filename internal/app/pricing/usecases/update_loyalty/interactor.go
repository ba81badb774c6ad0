package update_loyalty

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// Request enables or disables loyalty points for one price type.
// PointsAwarded and PointsRequired are ignored when Enabled is false.
type Request struct {
	EntityID       string
	Type           string
	Enabled        bool
	PointsAwarded  int64
	PointsRequired int64
}

// Interactor handles the update loyalty use case.
type Interactor struct {
	entities  contracts.EntityRepository
	outbox    contracts.OutboxRepository
	committer contracts.Committer
}

func NewInteractor(entities contracts.EntityRepository, outbox contracts.OutboxRepository, committer contracts.Committer) *Interactor {
	return &Interactor{entities: entities, outbox: outbox, committer: committer}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	t, err := domain.ParsePriceType(req.Type)
	if err != nil {
		return err
	}

	cfg := domain.DisabledLoyalty()
	if req.Enabled {
		cfg, err = domain.EnabledLoyalty(req.PointsAwarded, req.PointsRequired)
		if err != nil {
			return err
		}
	}

	entity, err := i.entities.GetByID(ctx, req.EntityID)
	if err != nil {
		return err
	}
	defer entity.ClearEvents()

	if err := entity.SetLoyalty(t, cfg); err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(i.entities.UpdateMut(entity))
	events, err := contracts.OutboxMutations(i.outbox, entity.DomainEvents())
	if err != nil {
		return err
	}
	plan.AddMultiple(events)

	if err := i.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to update loyalty: %w", err)
	}
	return nil
}
