package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitPlan(t *testing.T) {
	t.Run("new plan is empty", func(t *testing.T) {
		plan := NewPlan()
		assert.True(t, plan.IsEmpty())
		assert.Equal(t, 0, plan.Count())
	})

	t.Run("nil mutations are skipped", func(t *testing.T) {
		plan := NewPlan()
		plan.Add(nil)
		plan.AddMultiple([]*spanner.Mutation{nil, spanner.Delete("prices", spanner.Key{"p-1"}), nil})

		assert.Equal(t, 1, plan.Count())
		assert.False(t, plan.IsEmpty())
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		first := spanner.Delete("prices", spanner.Key{"p-1"})
		second := spanner.Delete("prices", spanner.Key{"p-2"})

		plan := NewPlan()
		plan.Add(first)
		plan.Add(second)

		require.Len(t, plan.Mutations(), 2)
		assert.Same(t, first, plan.Mutations()[0])
		assert.Same(t, second, plan.Mutations()[1])
	})
}

func TestCommitter_EmptyPlanIsNoop(t *testing.T) {
	c := NewCommitter(nil)

	assert.NoError(t, c.Apply(context.Background(), NewPlan()))
	assert.NoError(t, c.Apply(context.Background(), nil))
}
