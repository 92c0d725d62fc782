package uimedia

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
)

// UIMediaDTO exposes a site asset.
type UIMediaDTO struct {
	ID           uuid.UUID       `json:"id"`
	URL          string          `json:"url"`
	ThumbnailURL *string         `json:"thumbnailUrl"`
	Type         enums.MediaType `json:"type"`
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	IsPublic     bool            `json:"isPublic"`
	LocationIDs  []string        `json:"locationIds"`
	Index        int             `json:"index"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// UploadInput holds a multipart upload destined for a site slot. Only images
// are accepted.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
	Title       *string
	Description *string
	LocationIDs []string
	Index       *int
	IsPublic    *bool
}

// UpdateUIMediaInput captures partial mutation of a placed asset.
type UpdateUIMediaInput struct {
	Title       *string
	Description *string
	IsPublic    *bool
	LocationIDs *[]string
	Index       *int
}

// FromModel maps a ui_media row into a DTO. LocationIDs is never nil.
func FromModel(m *models.UIMedia) *UIMediaDTO {
	if m == nil {
		return nil
	}
	locations := []string(m.LocationIDs)
	if locations == nil {
		locations = []string{}
	}
	return &UIMediaDTO{
		ID:           m.ID,
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
		Type:         m.Type,
		Title:        m.Title,
		Description:  m.Description,
		IsPublic:     m.IsPublic,
		LocationIDs:  locations,
		Index:        m.Idx,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
