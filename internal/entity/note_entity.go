package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Content   string
	OwnerId   uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// PlaceholderTitle is applied whenever a note is created or saved with a
// blank title.
const PlaceholderTitle = "Untitled Note"
