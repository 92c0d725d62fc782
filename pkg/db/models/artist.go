package models

import (
	"time"

	"github.com/google/uuid"
)

// Artist identifies the creator of catalogued media.
type Artist struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string     `gorm:"column:name;not null;uniqueIndex"`
	Description  *string    `gorm:"column:description"`
	PhotoMediaID *uuid.UUID `gorm:"column:photo_media_id;type:uuid"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
