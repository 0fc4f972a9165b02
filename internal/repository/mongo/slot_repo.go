// internal/repository/mongo/slot_repo.go
package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"alcyxob/vitality-planner/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotCollectionName = "session_slots"

// slotDocument is one persisted slot. Value holds the raw JSON text so the
// document stays readable from the mongo shell.
type slotDocument struct {
	Namespace string    `bson:"namespace"`
	Slot      string    `bson:"slot"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoSlotRepository implements repository.SessionStore
type mongoSlotRepository struct {
	collection *mongo.Collection
	namespace  string
}

// NewMongoSlotRepository creates a SessionStore backed by the session_slots
// collection. Namespace separates independent sessions sharing a database.
func NewMongoSlotRepository(db *mongo.Database, namespace string) repository.SessionStore {
	return &mongoSlotRepository{
		collection: db.Collection(slotCollectionName),
		namespace:  namespace,
	}
}

func (r *mongoSlotRepository) filter(slot repository.Slot) bson.M {
	return bson.M{"namespace": r.namespace, "slot": string(slot)}
}

// Get loads the slot value.
func (r *mongoSlotRepository) Get(ctx context.Context, slot repository.Slot) ([]byte, error) {
	if !slot.Valid() {
		return nil, repository.ErrUnknownSlot
	}
	var doc slotDocument
	err := r.collection.FindOne(ctx, r.filter(slot)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return []byte(doc.Value), nil
}

// Set upserts the slot value.
func (r *mongoSlotRepository) Set(ctx context.Context, slot repository.Slot, value []byte) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	update := bson.M{
		"$set": bson.M{
			"value":     string(value),
			"updatedAt": time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, r.filter(slot), update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// Clear deletes the slot document. A missing document is not an error.
func (r *mongoSlotRepository) Clear(ctx context.Context, slot repository.Slot) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	_, err := r.collection.DeleteOne(ctx, r.filter(slot))
	return err
}

// EnsureSlotIndexes creates the unique (namespace, slot) index. Call during startup.
func EnsureSlotIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "namespace", Value: 1}, {Key: "slot", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// SlotCollection returns the collection the slot repository writes to.
func SlotCollection(db *mongo.Database) *mongo.Collection {
	return db.Collection(slotCollectionName)
}
