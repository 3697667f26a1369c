package service

import (
	"strings"

	"notedeck-be/internal/entity"

	"github.com/google/uuid"
)

// VisibleNotes derives the subset of notes matching the search term as a
// case-insensitive substring of title or content. An empty term yields the
// full list. Order is preserved and the input is never mutated.
func VisibleNotes(notes []*entity.Note, term string) []*entity.Note {
	if term == "" {
		return notes
	}

	needle := strings.ToLower(term)
	visible := make([]*entity.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			visible = append(visible, n)
		}
	}
	return visible
}

// SelectedNote derives the note referenced by selectedId, or nil when there
// is no selection or the id no longer matches any element (transiently
// possible right after a delete).
func SelectedNote(notes []*entity.Note, selectedId *uuid.UUID) *entity.Note {
	if selectedId == nil {
		return nil
	}
	for _, n := range notes {
		if n.Id == *selectedId {
			return n
		}
	}
	return nil
}
