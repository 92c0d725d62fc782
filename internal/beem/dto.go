package beem

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
	"github.com/edsu-house/edsu-backend/pkg/types"
)

// BookDTO exposes a BE-EM catalog entry with its resolved cover media.
type BookDTO struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Year         *int       `json:"year"`
	Author       *string    `json:"author"`
	Description  *string    `json:"description"`
	MediaID      *uuid.UUID `json:"mediaId"`
	URL          *string    `json:"url"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateBookInput holds creation-time book data.
type CreateBookInput struct {
	Title       string
	Year        *int
	Author      *string
	Description *string
	MediaID     *uuid.UUID
}

// UpdateBookInput captures partial book mutation. MediaID distinguishes
// an explicit null (detach the cover) from an absent field (keep it).
type UpdateBookInput struct {
	Title       *string
	Year        *int
	Author      *string
	Description *string
	MediaID     types.NullableUUID
}

// RowWithMedia is a book row joined with its cover media.
type RowWithMedia struct {
	models.BeEm `gorm:"embedded"`
	MediaURL    *string `gorm:"column:media_url"`
	MediaThumb  *string `gorm:"column:media_thumb"`
}

// FromRow maps a joined book row into a DTO.
func FromRow(row *RowWithMedia) *BookDTO {
	if row == nil {
		return nil
	}
	return &BookDTO{
		ID:           row.ID,
		Title:        row.Title,
		Year:         row.Year,
		Author:       row.Author,
		Description:  row.Description,
		MediaID:      row.MediaID,
		URL:          row.MediaURL,
		ThumbnailURL: row.MediaThumb,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
