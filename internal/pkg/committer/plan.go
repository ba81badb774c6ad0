// Package committer collects Spanner mutations produced by repositories and applies them in one
// atomic write.
//
// Use cases load aggregates, call domain methods, ask repositories for mutations (repositories
// never write on their own), append the outbox rows for the recorded domain events, and finally
// hand the plan to a Committer:
//
//	plan := committer.NewPlan()
//	plan.Add(entityMut)
//	plan.AddMultiple(priceMuts)
//	plan.AddMultiple(outboxMuts)
//	return c.Apply(ctx, plan)
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is an ordered set of mutations that must land together.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates an empty plan.
func NewPlan() *CommitPlan {
	return &CommitPlan{mutations: make([]*spanner.Mutation, 0, 4)}
}

// Add appends a mutation. Nil mutations are ignored so callers can pass optional writes directly.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple appends every non-nil mutation in muts.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns the collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty reports whether the plan holds no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Committer applies plans against a Spanner database.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a Committer bound to client.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply writes every mutation of the plan in a single transaction. An empty plan is a no-op.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan == nil || plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}
