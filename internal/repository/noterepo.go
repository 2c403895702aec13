package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/akuzmin/notehub/internal/model"
)

// NoteRepository provides owner-scoped access to notes. Every lookup and
// mutation is keyed by (ownerID, noteID); a miss is errs.ErrNotFound whether
// the note is absent or belongs to another owner.
type NoteRepository interface {
	// Create inserts a new note and fills its Seq and CreatedAt.
	Create(ctx context.Context, n *model.Note) error

	// ListByOwner returns the owner's notes ordered pinned-first, then newest-first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)

	// GetByID returns a single note scoped to its owner.
	GetByID(ctx context.Context, ownerID, noteID uuid.UUID) (*model.Note, error)

	// Update replaces title, content, tags and pin state, scoped to the owner.
	Update(ctx context.Context, n *model.Note) error

	// Delete removes a note scoped to its owner.
	Delete(ctx context.Context, ownerID, noteID uuid.UUID) error

	// TogglePin flips the pin flag and returns the updated note.
	TogglePin(ctx context.Context, ownerID, noteID uuid.UUID) (*model.Note, error)
}
