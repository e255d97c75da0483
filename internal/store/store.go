package store

import (
	"context"

	"club-backend/internal/models"
)

// Store is the persistence port for the club document. Implementations can
// back this with a JSON file on disk, in-memory state, or any other provider.
//
// Load is NOT read-only: implementations that support legacy storage keys
// migrate and then delete them on first call. Tests seeding legacy fixtures
// should expect those fixtures to be gone after a single Load.
type Store interface {
	// Load returns the document, structurally complete (every collection
	// non-nil). A corrupt or absent payload yields an empty default
	// document, never an error.
	Load(ctx context.Context) (*models.Document, error)

	// Save serializes and writes the full document, replacing any prior
	// value. There are no partial/merge semantics.
	Save(ctx context.Context, doc *models.Document) error

	// Update runs a read-modify-write cycle while holding the store's
	// write lock, so concurrent mutations (import, sync) serialize instead
	// of racing on last-write-wins. If fn returns an error the document is
	// not saved.
	Update(ctx context.Context, fn func(*models.Document) error) error
}
