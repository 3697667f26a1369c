package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"notedeck-be/internal/dto"
	"notedeck-be/internal/entity"
	"notedeck-be/internal/pkg/logger"
	"notedeck-be/internal/repository/contract"
	"notedeck-be/internal/repository/memory"
	"notedeck-be/pkg/events"
	pktNats "notedeck-be/pkg/nats"
	"notedeck-be/pkg/store"

	"github.com/google/uuid"
)

// ICollectionService is the note collection store: it owns each session's
// note list, selection, search term and editing flag, and reconciles them
// with the persistence backend. All intents from the presentation layer go
// through here; nothing else mutates session state.
type ICollectionService interface {
	Load(ctx context.Context, ownerId uuid.UUID) (*dto.SessionViewResponse, error)
	Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID, confirmed bool) error
	Select(ownerId uuid.UUID, id uuid.UUID) error
	SetSearchTerm(ownerId uuid.UUID, term string)
	StartEditing(ownerId uuid.UUID) error
	StopEditing(ownerId uuid.UUID)
	View(ownerId uuid.UUID) *dto.SessionViewResponse
}

type collectionService struct {
	repo             contract.NoteRepository
	sessions         *memory.SessionRepository
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewCollectionService(
	repo contract.NoteRepository,
	sessions *memory.SessionRepository,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ICollectionService {
	return &collectionService{
		repo:             repo,
		sessions:         sessions,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Load replaces the session's list with the backend's. If nothing is
// selected yet, the first returned note becomes selected. On failure the
// list is left as it was; never partially populated.
func (s *collectionService) Load(ctx context.Context, ownerId uuid.UUID) (*dto.SessionViewResponse, error) {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	c.Busy = true
	c.LastError = ""

	notes, err := s.repo.List(ctx, ownerId)
	c.Busy = false
	if err != nil {
		c.LastError = fmt.Sprintf("failed to load notes: %v", err)
		s.logger.Error("Collection", "Load failed", map[string]interface{}{"owner_id": ownerId, "error": err.Error()})
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}

	c.Notes = notes
	c.Loaded = true
	if c.SelectedId == nil && len(notes) > 0 {
		id := notes[0].Id
		c.Select(&id)
	}

	return s.viewLocked(c), nil
}

// Create persists a fresh note first; only the confirmed record (with the
// adapter-assigned id) is prepended, selected and opened for editing.
func (s *collectionService) Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	c.Busy = true
	c.LastError = ""

	note := &entity.Note{
		Title:     entity.PlaceholderTitle,
		OwnerId:   ownerId,
		CreatedAt: time.Now(),
	}
	if req != nil {
		if req.Title != "" {
			note.Title = req.Title
		}
		note.Content = req.Content
	}

	err := s.repo.Create(ctx, ownerId, note)
	c.Busy = false
	if err != nil {
		c.LastError = fmt.Sprintf("failed to create note: %v", err)
		s.logger.Error("Collection", "Create failed", map[string]interface{}{"owner_id": ownerId, "error": err.Error()})
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	c.Notes = append([]*entity.Note{note}, c.Notes...)
	id := note.Id
	c.Select(&id)
	c.Editing = true

	s.publishChange(ctx, "NOTE_CREATED", note.Id, ownerId)
	return toNoteResponse(note), nil
}

// Update merges partial field changes for an existing note. The in-memory
// copy converges to the record the backend confirms; order and all other
// notes stay untouched.
func (s *collectionService) Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	idx := c.IndexOf(req.Id)
	if idx < 0 {
		return nil, entity.ErrNoteNotFound
	}

	c.Busy = true
	c.LastError = ""

	confirmed, err := s.repo.Update(ctx, ownerId, req.Id, contract.NoteChanges{
		Title:   req.Title,
		Content: req.Content,
	})
	c.Busy = false
	if err != nil {
		c.LastError = fmt.Sprintf("failed to save note: %v", err)
		s.logger.Error("Collection", "Update failed", map[string]interface{}{"owner_id": ownerId, "note_id": req.Id, "error": err.Error()})
		return nil, fmt.Errorf("failed to save note: %w", err)
	}

	c.Notes[idx] = confirmed

	s.publishChange(ctx, "NOTE_UPDATED", confirmed.Id, ownerId)
	return toNoteResponse(confirmed), nil
}

// Delete is gated on an explicit confirmation the caller must have already
// obtained; declined means a complete no-op with no backend call. When the
// deleted note was selected, selection falls to the first remaining note.
func (s *collectionService) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID, confirmed bool) error {
	if !confirmed {
		return entity.ErrConfirmationRequired
	}

	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	idx := c.IndexOf(id)
	if idx < 0 {
		return entity.ErrNoteNotFound
	}

	c.Busy = true
	c.LastError = ""

	err := s.repo.Delete(ctx, ownerId, id)
	c.Busy = false
	if err != nil {
		c.LastError = fmt.Sprintf("failed to delete note: %v", err)
		s.logger.Error("Collection", "Delete failed", map[string]interface{}{"owner_id": ownerId, "note_id": id, "error": err.Error()})
		return fmt.Errorf("failed to delete note: %w", err)
	}

	c.Notes = append(c.Notes[:idx], c.Notes[idx+1:]...)

	if c.SelectedId != nil && *c.SelectedId == id {
		if len(c.Notes) > 0 {
			next := c.Notes[0].Id
			c.Select(&next)
		} else {
			c.Select(nil)
		}
	}

	s.publishChange(ctx, "NOTE_DELETED", id, ownerId)
	return nil
}

// Select sets the selection and always exits edit mode. No I/O.
func (s *collectionService) Select(ownerId uuid.UUID, id uuid.UUID) error {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	if c.IndexOf(id) < 0 {
		return entity.ErrNoteNotFound
	}
	c.Select(&id)
	return nil
}

// SetSearchTerm replaces the filter string. No I/O; it only drives the
// derived visible list.
func (s *collectionService) SetSearchTerm(ownerId uuid.UUID, term string) {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	c.SearchTerm = term
}

func (s *collectionService) StartEditing(ownerId uuid.UUID) error {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	if c.SelectedId == nil {
		return entity.ErrNoSelection
	}
	c.Editing = true
	return nil
}

// StopEditing exits edit mode. The list keeps only persisted values, so a
// cancelled edit leaks nothing into the view.
func (s *collectionService) StopEditing(ownerId uuid.UUID) {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	c.Editing = false
}

func (s *collectionService) View(ownerId uuid.UUID) *dto.SessionViewResponse {
	c := s.sessions.GetOrCreate(ownerId)
	c.Lock()
	defer c.Unlock()

	return s.viewLocked(c)
}

// viewLocked recomputes the derived view from current state. Callers hold
// the collection lock.
func (s *collectionService) viewLocked(c *store.Collection) *dto.SessionViewResponse {
	visible := VisibleNotes(c.Notes, c.SearchTerm)
	responses := make([]*dto.NoteResponse, len(visible))
	for i, n := range visible {
		responses[i] = toNoteResponse(n)
	}

	return &dto.SessionViewResponse{
		VisibleNotes: responses,
		SelectedNote: toNoteResponse(SelectedNote(c.Notes, c.SelectedId)),
		SearchTerm:   c.SearchTerm,
		Editing:      c.Editing,
		Busy:         c.Busy,
		Error:        c.LastError,
	}
}

// publishChange notifies the internal bus (WebSocket refresh) and the NATS
// stream. Both are auxiliary: failures are logged, never returned.
func (s *collectionService) publishChange(ctx context.Context, changeType string, noteId, ownerId uuid.UUID) {
	msg := dto.NoteChangedMessage{
		Type:    changeType,
		NoteId:  noteId,
		OwnerId: ownerId,
	}

	if s.publisherService != nil {
		payload, err := json.Marshal(msg)
		if err == nil {
			err = s.publisherService.Publish(ctx, payload)
		}
		if err != nil {
			s.logger.Warn("Collection", "Failed to publish change to internal bus", map[string]interface{}{"type": changeType, "error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: changeType,
			Data: map[string]interface{}{
				"note_id":  noteId,
				"owner_id": ownerId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Collection", "Failed to publish event to NATS", map[string]interface{}{"type": changeType, "error": err.Error()})
		}
	}
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	if n == nil {
		return nil
	}
	return &dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
