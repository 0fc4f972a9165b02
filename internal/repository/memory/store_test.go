package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"alcyxob/vitality-planner/internal/repository"
	"alcyxob/vitality-planner/internal/repository/storetest"
)

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, NewStore())
}

func TestStoreCountsWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	assert.False(t, store.Has(repository.SlotPlan))
	assert.NoError(t, store.Set(ctx, repository.SlotPlan, []byte(`{}`)))
	assert.True(t, store.Has(repository.SlotPlan))
	assert.Equal(t, 1, store.Writes())
}
