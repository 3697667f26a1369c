package service

import (
	"testing"

	"notedeck-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVisibleNotes(t *testing.T) {
	a := &entity.Note{Id: uuid.New(), Title: "Shopping List", Content: "milk"}
	b := &entity.Note{Id: uuid.New(), Title: "Work", Content: "ship the MILK feature"}
	c := &entity.Note{Id: uuid.New(), Title: "Diary", Content: "nothing"}
	notes := []*entity.Note{a, b, c}

	tests := []struct {
		name string
		term string
		want []*entity.Note
	}{
		{
			name: "empty term yields full list",
			term: "",
			want: []*entity.Note{a, b, c},
		},
		{
			name: "matches title case-insensitively",
			term: "shopping",
			want: []*entity.Note{a},
		},
		{
			name: "matches content case-insensitively",
			term: "Milk",
			want: []*entity.Note{a, b},
		},
		{
			name: "no matches",
			term: "zzz",
			want: []*entity.Note{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleNotes(notes, tt.term)
			assert.Equal(t, len(tt.want), len(got))
			for i := range tt.want {
				assert.Equal(t, tt.want[i].Id, got[i].Id)
			}
			// Input order untouched
			assert.Equal(t, []*entity.Note{a, b, c}, notes)
		})
	}
}

func TestSelectedNote(t *testing.T) {
	a := &entity.Note{Id: uuid.New(), Title: "A"}
	b := &entity.Note{Id: uuid.New(), Title: "B"}
	notes := []*entity.Note{a, b}

	t.Run("nil selection", func(t *testing.T) {
		assert.Nil(t, SelectedNote(notes, nil))
	})

	t.Run("matching id", func(t *testing.T) {
		got := SelectedNote(notes, &b.Id)
		assert.Equal(t, b, got)
	})

	t.Run("stale id resolves to none", func(t *testing.T) {
		stale := uuid.New()
		assert.Nil(t, SelectedNote(notes, &stale))
	})
}
