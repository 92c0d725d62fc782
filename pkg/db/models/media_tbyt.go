package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/pkg/enums"
)

// MediaTBYT is an asset in the TokoBuku catalog, kept apart from house media.
type MediaTBYT struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	URL          string          `gorm:"column:url;not null"`
	ThumbnailURL *string         `gorm:"column:thumbnail_url"`
	Type         enums.MediaType `gorm:"column:type;not null;default:'image'"`
	Title        *string         `gorm:"column:title"`
	Description  *string         `gorm:"column:description"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (MediaTBYT) TableName() string { return "media_tbyt" }
