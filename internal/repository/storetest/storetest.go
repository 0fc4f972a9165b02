// Package storetest runs the same behavioural checks against every
// repository.SessionStore implementation.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/vitality-planner/internal/repository"
)

// Run exercises store. It must start empty.
func Run(t *testing.T, store repository.SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty slots report not found", func(t *testing.T) {
		for _, slot := range repository.Slots {
			_, err := store.Get(ctx, slot)
			assert.ErrorIs(t, err, repository.ErrNotFound, slot)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, repository.SlotProfile, []byte(`{"age":30}`)))
		got, err := store.Get(ctx, repository.SlotProfile)
		require.NoError(t, err)
		assert.JSONEq(t, `{"age":30}`, string(got))
	})

	t.Run("set replaces", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, repository.SlotPlan, []byte(`{"v":1}`)))
		require.NoError(t, store.Set(ctx, repository.SlotPlan, []byte(`{"v":2}`)))
		got, err := store.Get(ctx, repository.SlotPlan)
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("slots are independent", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, repository.SlotTracker, []byte(`{}`)))
		require.NoError(t, store.Clear(ctx, repository.SlotTracker))

		_, err := store.Get(ctx, repository.SlotTracker)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		got, err := store.Get(ctx, repository.SlotProfile)
		require.NoError(t, err)
		assert.JSONEq(t, `{"age":30}`, string(got))
	})

	t.Run("clearing an empty slot is fine", func(t *testing.T) {
		assert.NoError(t, store.Clear(ctx, repository.SlotTracker))
		assert.NoError(t, store.Clear(ctx, repository.SlotTracker))
	})

	t.Run("unknown slot", func(t *testing.T) {
		bogus := repository.Slot("bogus")
		_, err := store.Get(ctx, bogus)
		assert.ErrorIs(t, err, repository.ErrUnknownSlot)
		assert.ErrorIs(t, store.Set(ctx, bogus, []byte(`{}`)), repository.ErrUnknownSlot)
		assert.ErrorIs(t, store.Clear(ctx, bogus), repository.ErrUnknownSlot)
	})
}
