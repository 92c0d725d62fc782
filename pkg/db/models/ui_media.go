package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/edsu-house/edsu-backend/pkg/enums"
)

// UIMedia is a site asset placed at one or more dashboard-managed locations.
type UIMedia struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	URL          string          `gorm:"column:url;not null"`
	ThumbnailURL *string         `gorm:"column:thumbnail_url"`
	Type         enums.MediaType `gorm:"column:type;not null;default:'image'"`
	Title        *string         `gorm:"column:title"`
	Description  *string         `gorm:"column:description"`
	IsPublic     bool            `gorm:"column:is_public;not null;default:true"`
	LocationIDs  pq.StringArray  `gorm:"column:location_ids;type:text[]"`
	Idx          int             `gorm:"column:idx;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (UIMedia) TableName() string { return "ui_media" }
