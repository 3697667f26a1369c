package memory

import (
	"sync"
	"time"

	"notedeck-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps each owner's collection state in memory for the
// lifetime of their session. Entries expire on inactivity and are purged
// by the cache janitor.
type SessionRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewSessionRepository(ttl, cleanupInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// GetOrCreate returns the owner's collection, materializing an empty one on
// first use. Each access refreshes the TTL so active sessions stay alive.
func (r *SessionRepository) GetOrCreate(ownerId uuid.UUID) *store.Collection {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(ownerId.String()); found {
		c := x.(*store.Collection)
		r.cache.Set(ownerId.String(), c, cache.DefaultExpiration)
		return c
	}

	c := store.NewCollection()
	r.cache.Set(ownerId.String(), c, cache.DefaultExpiration)
	return c
}

func (r *SessionRepository) Get(ownerId uuid.UUID) (*store.Collection, bool) {
	if x, found := r.cache.Get(ownerId.String()); found {
		return x.(*store.Collection), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(ownerId uuid.UUID) {
	r.cache.Delete(ownerId.String())
}
