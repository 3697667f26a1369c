package store

import (
	"sync"

	"notedeck-be/internal/entity"

	"github.com/google/uuid"
)

// Collection is the per-session state owned by the collection store: the
// single source-of-truth note list plus selection/search/editing flags.
// It is mutated only through the collection service, which holds the mutex
// for the duration of each operation.
type Collection struct {
	mu sync.Mutex

	// Ordered list, display order. Newest-created notes sit at the front.
	Notes []*entity.Note

	// Lookup key into Notes, not ownership. Nil means no selection.
	SelectedId *uuid.UUID

	SearchTerm string
	Editing    bool

	// Busy is true while a mutating operation is in flight. The mutex
	// serializes operations, so concurrent readers wait instead of seeing
	// it set; see dto.SessionViewResponse for the contract.
	Busy bool

	// LastError holds the previous operation's human-readable failure, if any.
	LastError string

	// Loaded flips after the first successful Load.
	Loaded bool
}

func NewCollection() *Collection {
	return &Collection{
		Notes: make([]*entity.Note, 0),
	}
}

func (c *Collection) Lock()   { c.mu.Lock() }
func (c *Collection) Unlock() { c.mu.Unlock() }

// IndexOf returns the position of id in Notes, or -1.
func (c *Collection) IndexOf(id uuid.UUID) int {
	for i, n := range c.Notes {
		if n.Id == id {
			return i
		}
	}
	return -1
}

// Select sets the selection and always exits edit mode.
func (c *Collection) Select(id *uuid.UUID) {
	c.SelectedId = id
	c.Editing = false
}
