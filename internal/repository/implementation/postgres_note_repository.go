package implementation

import (
	"context"
	"errors"
	"fmt"

	"notedeck-be/internal/entity"
	"notedeck-be/internal/mapper"
	"notedeck-be/internal/model"
	"notedeck-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostgresNoteRepository is the remote structured-data-service backend.
// Ids and timestamps are server-assigned (uuid here, created/updated via
// GORM auto timestamps).
type PostgresNoteRepository struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewPostgresNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &PostgresNoteRepository{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *PostgresNoteRepository) List(ctx context.Context, ownerId uuid.UUID) ([]*entity.Note, error) {
	var models []*model.Note
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerId).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PostgresNoteRepository) Create(ctx context.Context, ownerId uuid.UUID, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	m.OwnerId = ownerId
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *PostgresNoteRepository) Update(ctx context.Context, ownerId uuid.UUID, id uuid.UUID, changes contract.NoteChanges) (*entity.Note, error) {
	var m model.Note
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNoteNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if changes.Title != nil {
		title := *changes.Title
		if title == "" {
			title = entity.PlaceholderTitle
		}
		updates["title"] = title
	}
	if changes.Content != nil {
		updates["content"] = *changes.Content
	}

	if len(updates) > 0 {
		// Updates bumps updated_at via autoUpdateTime
		if err := r.db.WithContext(ctx).Model(&m).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	// Reload so the caller gets the confirmed server representation
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerId).
		Delete(&model.Note{})
	if res.Error != nil {
		return fmt.Errorf("delete note %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrNoteNotFound
	}
	return nil
}
