// Package slot implements the single named durable blob the store persists
// its session subset to.
package slot

import (
	"context"

	"github.com/pageza/recipebox/internal/store"
)

// ErrNotFound is returned by Load when the slot holds nothing yet
var ErrNotFound = store.ErrSlotEmpty

var _ store.Slot = Slot(nil)

// Slot is a named durable blob. Implementations are safe for concurrent use.
type Slot interface {
	// Name returns the slot name
	Name() string
	// Load returns the stored blob or ErrNotFound
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the stored blob
	Save(ctx context.Context, data []byte) error
	// Delete empties the slot. Deleting an empty slot is not an error.
	Delete(ctx context.Context) error
	// Close releases the backend's resources
	Close() error
}
