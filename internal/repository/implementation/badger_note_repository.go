package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notedeck-be/internal/entity"
	"notedeck-be/internal/repository/contract"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// storedNote is the on-disk record layout: one JSON array of these under a
// single well-known key per owner. Timestamps are epoch millis.
type storedNote struct {
	Id      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Created int64  `json:"created"`
	Updated int64  `json:"updated"`
}

// BadgerNoteRepository is the local durable key-value backend. Ids are
// self-assigned and timestamps caller-assigned, unlike the postgres
// backend where both come from the server. Any storage failure surfaces
// as entity.ErrStorageUnavailable.
type BadgerNoteRepository struct {
	db *badger.DB
}

func NewBadgerNoteRepository(db *badger.DB) contract.NoteRepository {
	return &BadgerNoteRepository{db: db}
}

// OpenBadger opens (or creates) the local store at path.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	return db, nil
}

func notesKey(ownerId uuid.UUID) []byte {
	return []byte("notes/" + ownerId.String())
}

func (r *BadgerNoteRepository) readAll(txn *badger.Txn, ownerId uuid.UUID) ([]storedNote, error) {
	item, err := txn.Get(notesKey(ownerId))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return []storedNote{}, nil
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}

	var records []storedNote
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &records)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	return records, nil
}

func (r *BadgerNoteRepository) writeAll(txn *badger.Txn, ownerId uuid.UUID, records []storedNote) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	if err := txn.Set(notesKey(ownerId), data); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *BadgerNoteRepository) toEntity(s storedNote, ownerId uuid.UUID) *entity.Note {
	id, _ := uuid.Parse(s.Id)
	updated := time.UnixMilli(s.Updated)
	return &entity.Note{
		Id:        id,
		Title:     s.Title,
		Content:   s.Content,
		OwnerId:   ownerId,
		CreatedAt: time.UnixMilli(s.Created),
		UpdatedAt: &updated,
	}
}

func (r *BadgerNoteRepository) List(ctx context.Context, ownerId uuid.UUID) ([]*entity.Note, error) {
	var notes []*entity.Note
	err := r.db.View(func(txn *badger.Txn) error {
		records, err := r.readAll(txn, ownerId)
		if err != nil {
			return err
		}
		notes = make([]*entity.Note, 0, len(records))
		for _, rec := range records {
			notes = append(notes, r.toEntity(rec, ownerId))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *BadgerNoteRepository) Create(ctx context.Context, ownerId uuid.UUID, note *entity.Note) error {
	now := time.Now()
	rec := storedNote{
		Id:      uuid.New().String(),
		Title:   note.Title,
		Content: note.Content,
		Created: now.UnixMilli(),
		Updated: now.UnixMilli(),
	}
	if rec.Title == "" {
		rec.Title = entity.PlaceholderTitle
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		records, err := r.readAll(txn, ownerId)
		if err != nil {
			return err
		}
		// Newest first, matching List order
		records = append([]storedNote{rec}, records...)
		return r.writeAll(txn, ownerId, records)
	})
	if err != nil {
		return err
	}

	*note = *r.toEntity(rec, ownerId)
	return nil
}

func (r *BadgerNoteRepository) Update(ctx context.Context, ownerId uuid.UUID, id uuid.UUID, changes contract.NoteChanges) (*entity.Note, error) {
	var updated *entity.Note
	err := r.db.Update(func(txn *badger.Txn) error {
		records, err := r.readAll(txn, ownerId)
		if err != nil {
			return err
		}

		idx := -1
		for i, rec := range records {
			if rec.Id == id.String() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return entity.ErrNoteNotFound
		}

		if changes.Title != nil {
			if *changes.Title == "" {
				records[idx].Title = entity.PlaceholderTitle
			} else {
				records[idx].Title = *changes.Title
			}
		}
		if changes.Content != nil {
			records[idx].Content = *changes.Content
		}
		records[idx].Updated = time.Now().UnixMilli()

		if err := r.writeAll(txn, ownerId, records); err != nil {
			return err
		}
		updated = r.toEntity(records[idx], ownerId)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BadgerNoteRepository) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	return r.db.Update(func(txn *badger.Txn) error {
		records, err := r.readAll(txn, ownerId)
		if err != nil {
			return err
		}

		kept := make([]storedNote, 0, len(records))
		found := false
		for _, rec := range records {
			if rec.Id == id.String() {
				found = true
				continue
			}
			kept = append(kept, rec)
		}
		if !found {
			return entity.ErrNoteNotFound
		}
		return r.writeAll(txn, ownerId, kept)
	})
}
