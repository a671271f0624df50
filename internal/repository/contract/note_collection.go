package contract

import (
	"context"
	"time"

	"notesync-be/internal/entity"

	"github.com/google/uuid"
)

// NoteCollection is the storage-location-agnostic surface the persistence
// adapter selects between: a remote document collection or the local
// fallback blob.
type NoteCollection interface {
	Create(ctx context.Context, note *entity.Note) error

	// Patch applies the set fields of the patch to the matching record and
	// stamps the given updated timestamp. A missing id returns
	// (false, nil): callers decide whether that is an error.
	Patch(ctx context.Context, id uuid.UUID, patch *entity.NotePatch, updatedAt time.Time) (bool, error)

	// Delete removes the record when present and reports whether a row
	// was actually removed. A missing id is (false, nil), never an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	FindOne(ctx context.Context, id uuid.UUID) (*entity.Note, error)

	// FindAll returns the full collection most-recently-touched first.
	FindAll(ctx context.Context) ([]*entity.Note, error)

	// Live reports whether the collection has a change source worth
	// observing. The local fallback blob has none: a subscription against
	// it fires exactly once.
	Live() bool
}
