// Package blob stores session slots as objects in a BlobStorage bucket, one
// object per slot under <prefix><namespace>/<slot>.json.
package blob

import (
	"context"
	"errors"
	"path"

	"alcyxob/vitality-planner/internal/repository"
	"alcyxob/vitality-planner/internal/storage"
)

const contentType = "application/json"

type Store struct {
	objects   storage.BlobStorage
	prefix    string
	namespace string
}

func NewStore(objects storage.BlobStorage, prefix, namespace string) *Store {
	return &Store{objects: objects, prefix: prefix, namespace: namespace}
}

// Key returns the object key used for slot.
func (s *Store) Key(slot repository.Slot) string {
	return s.prefix + path.Join(s.namespace, string(slot)+".json")
}

func (s *Store) Get(ctx context.Context, slot repository.Slot) ([]byte, error) {
	if !slot.Valid() {
		return nil, repository.ErrUnknownSlot
	}
	body, err := s.objects.GetObject(ctx, s.Key(slot))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, repository.ErrNotFound
	}
	return body, err
}

func (s *Store) Set(ctx context.Context, slot repository.Slot, value []byte) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	return s.objects.PutObject(ctx, s.Key(slot), contentType, value)
}

func (s *Store) Clear(ctx context.Context, slot repository.Slot) error {
	if !slot.Valid() {
		return repository.ErrUnknownSlot
	}
	return s.objects.DeleteObject(ctx, s.Key(slot))
}
