package entity

import "errors"

// Sentinel errors shared by both storage backends and the collection store.
// Callers match with errors.Is; adapters wrap the underlying cause with %w.
var (
	ErrNoteNotFound         = errors.New("note not found")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
	ErrNoSelection          = errors.New("no note selected")
)
