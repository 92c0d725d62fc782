package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a long-form editorial entry, optionally tied to a program.
type Article struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string     `gorm:"column:title;not null"`
	Slug          string     `gorm:"column:slug;not null;uniqueIndex"`
	Content       string     `gorm:"column:content;not null"`
	Excerpt       *string    `gorm:"column:excerpt"`
	CoverMediaID  *uuid.UUID `gorm:"column:cover_media_id;type:uuid"`
	CoverImageURL *string    `gorm:"column:cover_image_url"`
	AuthorID      *uuid.UUID `gorm:"column:author_id;type:uuid"`
	ProgramID     *uuid.UUID `gorm:"column:program_id;type:uuid"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
