package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/akuzmin/notehub/internal/errs"
	"github.com/akuzmin/notehub/internal/model"
)

// NoteRepo implements NoteRepository using PostgreSQL.
type NoteRepo struct{ db *DB }

// NewNoteRepo constructs a note repository.
func NewNoteRepo(db *DB) *NoteRepo { return &NoteRepo{db: db} }

const noteColumns = `id, owner_id, seq, title, content, tags, is_pinned, created_at`

// Create inserts a new note row and fills the store-assigned seq and created_at.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const q = `
INSERT INTO notes (id, owner_id, title, content, tags, is_pinned)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING seq, created_at`
	row := r.db.Pool.QueryRow(ctx, q, n.ID, n.OwnerID, n.Title, n.Content, n.Tags, n.IsPinned)
	return row.Scan(&n.Seq, &n.CreatedAt)
}

// ListByOwner returns the owner's notes, pinned first, newest first,
// insertion order breaking created_at ties.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	const q = `
SELECT ` + noteColumns + `
FROM notes
WHERE owner_id=$1
ORDER BY is_pinned DESC, created_at DESC, seq DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := scanNote(rows, &n); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetByID selects a single note scoped to its owner.
func (r *NoteRepo) GetByID(ctx context.Context, ownerID, noteID uuid.UUID) (*model.Note, error) {
	const q = `
SELECT ` + noteColumns + `
FROM notes
WHERE id=$1 AND owner_id=$2`
	var n model.Note
	if err := scanNote(r.db.Pool.QueryRow(ctx, q, noteID, ownerID), &n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Update replaces the mutable fields of a note, scoped to its owner.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note) error {
	const q = `
UPDATE notes
SET title=$3, content=$4, tags=$5, is_pinned=$6
WHERE id=$1 AND owner_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, n.ID, n.OwnerID, n.Title, n.Content, n.Tags, n.IsPinned)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a note scoped to its owner.
func (r *NoteRepo) Delete(ctx context.Context, ownerID, noteID uuid.UUID) error {
	const q = `DELETE FROM notes WHERE id=$1 AND owner_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, noteID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// TogglePin flips is_pinned in a single round trip and returns the updated note.
func (r *NoteRepo) TogglePin(ctx context.Context, ownerID, noteID uuid.UUID) (*model.Note, error) {
	const q = `
UPDATE notes
SET is_pinned = NOT is_pinned
WHERE id=$1 AND owner_id=$2
RETURNING ` + noteColumns
	var n model.Note
	if err := scanNote(r.db.Pool.QueryRow(ctx, q, noteID, ownerID), &n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func scanNote(row pgx.Row, n *model.Note) error {
	return row.Scan(&n.ID, &n.OwnerID, &n.Seq, &n.Title, &n.Content, &n.Tags, &n.IsPinned, &n.CreatedAt)
}
