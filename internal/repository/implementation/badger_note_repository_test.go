package implementation

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"notedeck-be/internal/entity"
	"notedeck-be/internal/repository/contract"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBadgerRepo(t *testing.T) (contract.NoteRepository, *badger.DB) {
	t.Helper()
	db, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBadgerNoteRepository(db), db
}

func TestBadgerCreateAssignsIdAndTimestamps(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)
	owner := uuid.New()
	ctx := context.Background()

	note := &entity.Note{Title: "First", Content: "hello"}
	require.NoError(t, repo.Create(ctx, owner, note))

	assert.NotEqual(t, uuid.Nil, note.Id)
	assert.False(t, note.CreatedAt.IsZero())
	require.NotNil(t, note.UpdatedAt)
	assert.Equal(t, owner, note.OwnerId)
}

func TestBadgerCreateDefaultsBlankTitle(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)
	owner := uuid.New()

	note := &entity.Note{}
	require.NoError(t, repo.Create(context.Background(), owner, note))
	assert.Equal(t, entity.PlaceholderTitle, note.Title)
}

func TestBadgerListNewestFirst(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)
	owner := uuid.New()
	ctx := context.Background()

	first := &entity.Note{Title: "first"}
	require.NoError(t, repo.Create(ctx, owner, first))
	second := &entity.Note{Title: "second"}
	require.NoError(t, repo.Create(ctx, owner, second))

	notes, err := repo.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.Id, notes[0].Id)
	assert.Equal(t, first.Id, notes[1].Id)
}

func TestBadgerListEmptyForUnknownOwner(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)

	notes, err := repo.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestBadgerPersistedLayout(t *testing.T) {
	repo, db := newTestBadgerRepo(t)
	owner := uuid.New()
	ctx := context.Background()

	note := &entity.Note{Title: "Layout", Content: "body"}
	require.NoError(t, repo.Create(ctx, owner, note))

	// One serialized array under the owner's well-known key, records with
	// string id and epoch-millis timestamps.
	var raw []map[string]interface{}
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(notesKey(owner))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &raw)
		})
	})
	require.NoError(t, err)
	require.Len(t, raw, 1)

	assert.Equal(t, note.Id.String(), raw[0]["id"])
	assert.Equal(t, "Layout", raw[0]["title"])
	assert.Equal(t, "body", raw[0]["content"])
	created, ok := raw[0]["created"].(float64)
	require.True(t, ok, "created must be numeric epoch millis")
	assert.InDelta(t, time.Now().UnixMilli(), int64(created), float64(10*time.Second.Milliseconds()))
}

func TestBadgerUpdateMergesPartialChanges(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)
	owner := uuid.New()
	ctx := context.Background()

	note := &entity.Note{Title: "Original", Content: "original body"}
	require.NoError(t, repo.Create(ctx, owner, note))
	before := *note.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	title := "Renamed"
	updated, err := repo.Update(ctx, owner, note.Id, contract.NoteChanges{Title: &title})
	require.NoError(t, err)

	// Full merged record comes back regardless of which fields were sent
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original body", updated.Content)
	assert.True(t, updated.UpdatedAt.After(before))

	content := "new body"
	updated, err = repo.Update(ctx, owner, note.Id, contract.NoteChanges{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "new body", updated.Content)
}

func TestBadgerUpdateUnknownId(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)

	title := "X"
	_, err := repo.Update(context.Background(), uuid.New(), uuid.New(), contract.NoteChanges{Title: &title})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestBadgerDelete(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)
	owner := uuid.New()
	ctx := context.Background()

	keep := &entity.Note{Title: "keep"}
	require.NoError(t, repo.Create(ctx, owner, keep))
	drop := &entity.Note{Title: "drop"}
	require.NoError(t, repo.Create(ctx, owner, drop))

	require.NoError(t, repo.Delete(ctx, owner, drop.Id))

	notes, err := repo.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, keep.Id, notes[0].Id)

	err = repo.Delete(ctx, owner, drop.Id)
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)
}

func TestBadgerOwnersAreIsolated(t *testing.T) {
	repo, _ := newTestBadgerRepo(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	note := &entity.Note{Title: "mine"}
	require.NoError(t, repo.Create(ctx, alice, note))

	notes, err := repo.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
