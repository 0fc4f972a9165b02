package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/vitality-planner/internal/repository"
	"alcyxob/vitality-planner/internal/repository/storetest"
)

func TestStoreConformance(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	storetest.Run(t, store)
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, repository.SlotTracker, []byte(`{"2024-05-01":{"habits":[],"exercises":[]}}`)))

	_, err = os.Stat(filepath.Join(dir, string(repository.SlotTracker)+".json"))
	require.NoError(t, err)

	second, err := NewStore(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, repository.SlotTracker)
	require.NoError(t, err)
	assert.Contains(t, string(got), "2024-05-01")
}
