package media

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	"github.com/edsu-house/edsu-backend/pkg/types"
)

// ArtistRef is the embedded artist reference on media payloads.
type ArtistRef struct {
	ID   uuid.UUID `json:"id"`
	Name *string   `json:"name,omitempty"`
}

// MediaDTO exposes a catalogued media entry in API responses.
type MediaDTO struct {
	ID           uuid.UUID       `json:"id"`
	Title        *string         `json:"title"`
	Type         enums.MediaType `json:"type"`
	URL          string          `json:"url"`
	ThumbnailURL string          `json:"thumbnailUrl"`
	Artist       *ArtistRef      `json:"artist"`
	Year         *int            `json:"year"`
	Description  *string         `json:"description"`
	Placeholders []string        `json:"placeholders"`
	IsHero       bool            `json:"isHero"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CreateMediaInput holds creation-time media data.
type CreateMediaInput struct {
	Title        *string
	Type         *enums.MediaType
	URL          string
	ThumbnailURL string
	ArtistID     *uuid.UUID
	Year         *int
	Description  *string
	Placeholders []string
	IsHero       *bool
}

// UpdateMediaInput captures the allowed media fields for partial mutation.
// ArtistID distinguishes "absent" from "explicit null": a null clears the link.
type UpdateMediaInput struct {
	Title        *string
	Type         *enums.MediaType
	URL          *string
	ThumbnailURL *string
	ArtistID     types.NullableUUID
	Year         *int
	Description  *string
	Placeholders *[]string
	IsHero       *bool
}

// RowWithArtist is a media row joined with its artist name.
type RowWithArtist struct {
	models.Media `gorm:"embedded"`
	ArtistName   *string `gorm:"column:artist_name"`
}

// FromRow maps a joined row into a DTO. Missing placeholder arrays become
// empty slices so clients always see an array.
func FromRow(row *RowWithArtist) *MediaDTO {
	if row == nil {
		return nil
	}

	dto := &MediaDTO{
		ID:           row.ID,
		Title:        row.Title,
		Type:         row.Type,
		URL:          row.URL,
		ThumbnailURL: row.ThumbnailURL,
		Year:         row.Year,
		Description:  row.Description,
		Placeholders: []string{},
		IsHero:       row.IsHero,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}

	if len(row.Placeholders) > 0 {
		dto.Placeholders = append(dto.Placeholders, row.Placeholders...)
	}
	if row.ArtistID != nil {
		dto.Artist = &ArtistRef{ID: *row.ArtistID, Name: row.ArtistName}
	}

	return dto
}

// FromModel maps a bare media model (no artist join) into a DTO.
func FromModel(m *models.Media) *MediaDTO {
	if m == nil {
		return nil
	}
	return FromRow(&RowWithArtist{Media: *m})
}

// ToModel prepares the GORM model from creation input, supplying defaults.
func (c CreateMediaInput) ToModel() *models.Media {
	model := &models.Media{
		Title:        c.Title,
		Type:         enums.MediaTypeImage,
		URL:          c.URL,
		ThumbnailURL: c.ThumbnailURL,
		ArtistID:     c.ArtistID,
		Year:         c.Year,
		Description:  c.Description,
		Placeholders: c.Placeholders,
		IsHero:       false,
	}
	if c.Type != nil {
		model.Type = *c.Type
	}
	if c.IsHero != nil {
		model.IsHero = *c.IsHero
	}
	return model
}
