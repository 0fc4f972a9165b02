package repository

import (
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUnknownSlot  = RepositoryError("unknown slot")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Slot names one independently persisted piece of session state.
type Slot string

// The three session slots. Presence of a slot means the matching in-memory
// state is restored on session start.
const (
	SlotProfile Slot = "vitality_user_profile"
	SlotPlan    Slot = "vitality_wellness_plan"
	SlotTracker Slot = "vitality_tracker_data"
)

// Slots lists every slot, in the order a full reset clears them.
var Slots = []Slot{SlotProfile, SlotPlan, SlotTracker}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// SessionStore is durable string-keyed storage for the session slots. Values
// are JSON documents. Writes carry no transactional guarantee across slots.
type SessionStore interface {
	// Get returns the slot value or ErrNotFound when the slot is empty.
	Get(ctx context.Context, slot Slot) ([]byte, error)
	// Set replaces the slot value.
	Set(ctx context.Context, slot Slot, value []byte) error
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear(ctx context.Context, slot Slot) error
}
