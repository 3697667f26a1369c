package dto

import "github.com/google/uuid"

type SelectNoteRequest struct {
	Id uuid.UUID `json:"id" validate:"required"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

// SessionViewResponse is the derived, read-only view the presentation layer
// renders from. It is recomputed on every read, never cached.
//
// Busy: session operations are serialized, so a view request issued during
// a mutation waits for it to finish rather than observing an in-flight
// state. The flag therefore reads false on every served view; it stays on
// the wire so clients need no schema change if gating ever moves
// client-side.
type SessionViewResponse struct {
	VisibleNotes []*NoteResponse `json:"visible_notes"`
	SelectedNote *NoteResponse   `json:"selected_note"`
	SearchTerm   string          `json:"search_term"`
	Editing      bool            `json:"editing"`
	Busy         bool            `json:"busy"`
	Error        string          `json:"error"`
}
