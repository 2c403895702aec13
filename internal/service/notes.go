package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/akuzmin/notehub/internal/errs"
	"github.com/akuzmin/notehub/internal/model"
	"github.com/akuzmin/notehub/internal/repository"
)

// NoteService scopes every note operation to the caller's identity. The
// ownerID always comes from the verified token, never from the request body.
type NoteService interface {
	// List returns the caller's notes, pinned first, newest first.
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error)
	// Create stores a new note owned by the caller.
	Create(ctx context.Context, ownerID uuid.UUID, draft model.NoteDraft) (*model.Note, error)
	// Update replaces title, content and tags; pin state is kept unless supplied.
	Update(ctx context.Context, ownerID, noteID uuid.UUID, draft model.NoteDraft) (*model.Note, error)
	// Delete removes the caller's note.
	Delete(ctx context.Context, ownerID, noteID uuid.UUID) error
	// TogglePin flips the pin flag, leaving all other fields unchanged.
	TogglePin(ctx context.Context, ownerID, noteID uuid.UUID) (*model.Note, error)
}

type NoteServiceImpl struct {
	repo repository.NoteRepository
}

// NewNoteService constructs NoteService.
func NewNoteService(repo repository.NoteRepository) *NoteServiceImpl {
	return &NoteServiceImpl{repo: repo}
}

// List returns all notes owned by the caller in display order.
func (s *NoteServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	if ownerID == uuid.Nil {
		return nil, errors.New("empty owner id")
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates the draft and stores a note owned by the caller. Any
// client-supplied owner is ignored.
func (s *NoteServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, draft model.NoteDraft) (*model.Note, error) {
	title, content, err := cleanTitleContent(draft)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	n := &model.Note{
		ID:      id,
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Tags:    cleanTags(draft.Tags),
	}
	if draft.IsPinned != nil {
		n.IsPinned = *draft.IsPinned
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Update replaces title, content and tags of the caller's note. The pin
// state is preserved unless the draft supplies one explicitly.
func (s *NoteServiceImpl) Update(ctx context.Context, ownerID, noteID uuid.UUID, draft model.NoteDraft) (*model.Note, error) {
	title, content, err := cleanTitleContent(draft)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.GetByID(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}
	n.Title = title
	n.Content = content
	n.Tags = cleanTags(draft.Tags)
	if draft.IsPinned != nil {
		n.IsPinned = *draft.IsPinned
	}
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes the caller's note. A note owned by someone else fails with
// the same ErrNotFound as a missing one.
func (s *NoteServiceImpl) Delete(ctx context.Context, ownerID, noteID uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, noteID)
}

// TogglePin flips the pin flag of the caller's note.
func (s *NoteServiceImpl) TogglePin(ctx context.Context, ownerID, noteID uuid.UUID) (*model.Note, error) {
	return s.repo.TogglePin(ctx, ownerID, noteID)
}

func cleanTitleContent(draft model.NoteDraft) (string, string, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return "", "", errs.Validation("title", "title is required")
	}
	content := strings.TrimSpace(draft.Content)
	if content == "" {
		return "", "", errs.Validation("content", "content is required")
	}
	return title, content, nil
}

// cleanTags trims each tag and drops empties, preserving order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
