package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type NoteResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// NoteChangedMessage is the payload published on the internal event bus
// after every confirmed mutation.
type NoteChangedMessage struct {
	Type    string    `json:"type"` // NOTE_CREATED | NOTE_UPDATED | NOTE_DELETED
	NoteId  uuid.UUID `json:"note_id"`
	OwnerId uuid.UUID `json:"owner_id"`
}
