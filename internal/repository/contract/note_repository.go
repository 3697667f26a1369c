package contract

import (
	"context"

	"notedeck-be/internal/entity"

	"github.com/google/uuid"
)

// NoteChanges carries a partial update. Nil fields are left untouched by
// the backend.
type NoteChanges struct {
	Title   *string
	Content *string
}

// NoteRepository is the persistence adapter behind the collection store.
// Both backends (postgres, badger) satisfy it; the store works unmodified
// against either.
//
// Contract:
//   - List returns the owner's notes ordered newest-created-first.
//   - Create assigns the id (and, for the postgres backend, timestamps)
//     and writes them back into the given note. No partial creates.
//   - Update merges the changes, refreshes the updated timestamp and
//     returns the confirmed record; entity.ErrNoteNotFound if id is absent.
//   - Delete returns entity.ErrNoteNotFound if id is absent.
type NoteRepository interface {
	List(ctx context.Context, ownerId uuid.UUID) ([]*entity.Note, error)
	Create(ctx context.Context, ownerId uuid.UUID, note *entity.Note) error
	Update(ctx context.Context, ownerId uuid.UUID, id uuid.UUID, changes NoteChanges) (*entity.Note, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error
}
