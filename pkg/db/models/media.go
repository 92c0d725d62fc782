package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/edsu-house/edsu-backend/pkg/enums"
)

// Media captures an artwork or document stored in the object bucket.
type Media struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title        *string         `gorm:"column:title"`
	Type         enums.MediaType `gorm:"column:type;not null;default:'image'"`
	URL          string          `gorm:"column:url;not null"`
	ThumbnailURL string          `gorm:"column:thumbnail_url;not null"`
	ArtistID     *uuid.UUID      `gorm:"column:artist_id;type:uuid"`
	Year         *int            `gorm:"column:year"`
	Description  *string         `gorm:"column:description"`
	Placeholders pq.StringArray  `gorm:"column:placeholders;type:text[]"`
	IsHero       bool            `gorm:"column:is_hero;not null;default:false"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Media) TableName() string { return "media" }
