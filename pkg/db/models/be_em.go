package models

import (
	"time"

	"github.com/google/uuid"
)

// BeEm is a book entry in the BE-EM publishing catalog.
type BeEm struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Year        *int       `gorm:"column:year"`
	Author      *string    `gorm:"column:author"`
	Description *string    `gorm:"column:description"`
	MediaID     *uuid.UUID `gorm:"column:media_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (BeEm) TableName() string { return "be_em" }
