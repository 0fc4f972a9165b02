package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"alcyxob/vitality-planner/internal/repository"
)

func TestMongoSlotRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get returns stored value", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.DB, "default")
		ns := mt.DB.Name() + "." + slotCollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "namespace", Value: "default"},
			{Key: "slot", Value: string(repository.SlotProfile)},
			{Key: "value", Value: `{"age":30}`},
		}))

		got, err := repo.Get(ctx, repository.SlotProfile)
		require.NoError(mt, err)
		assert.JSONEq(mt, `{"age":30}`, string(got))
	})

	mt.Run("get maps no documents to not found", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.DB, "default")
		ns := mt.DB.Name() + "." + slotCollectionName
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.Get(ctx, repository.SlotPlan)
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.DB, "default")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "x"}}}},
		))

		assert.NoError(mt, repo.Set(ctx, repository.SlotTracker, []byte(`{}`)))
	})

	mt.Run("set surfaces write errors", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.DB, "default")
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		assert.Error(mt, repo.Set(ctx, repository.SlotTracker, []byte(`{}`)))
	})

	mt.Run("clear deletes", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.DB, "default")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.NoError(mt, repo.Clear(ctx, repository.SlotPlan))
	})

	mt.Run("unknown slot never reaches the server", func(mt *mtest.T) {
		repo := NewMongoSlotRepository(mt.DB, "default")

		_, err := repo.Get(ctx, repository.Slot("bogus"))
		assert.ErrorIs(mt, err, repository.ErrUnknownSlot)
	})
}
