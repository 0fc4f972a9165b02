package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/vitality-planner/internal/repository"
	"alcyxob/vitality-planner/internal/repository/storetest"
)

func openTestDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vitality.db")
}

func TestStoreConformance(t *testing.T) {
	database, err := Open(openTestDB(t))
	require.NoError(t, err)
	storetest.Run(t, NewStore(database, "default"))
}

func TestStoreNamespacesAreIsolated(t *testing.T) {
	database, err := Open(openTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	alice := NewStore(database, "alice")
	bob := NewStore(database, "bob")

	require.NoError(t, alice.Set(ctx, repository.SlotProfile, []byte(`{"age":30}`)))
	_, err = bob.Get(ctx, repository.SlotProfile)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, bob.Clear(ctx, repository.SlotProfile))
	got, err := alice.Get(ctx, repository.SlotProfile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":30}`, string(got))
}
