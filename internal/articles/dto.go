package articles

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// AuthorRef is the resolved author attached to an article.
type AuthorRef struct {
	Username string `json:"username"`
}

// ArticleDTO exposes an article with resolved cover, author and inline media.
type ArticleDTO struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Slug         string           `json:"slug"`
	Content      string           `json:"content"`
	Excerpt      *string          `json:"excerpt"`
	CoverImage   *string          `json:"coverImage"`
	CoverMediaID *uuid.UUID       `json:"coverMediaId"`
	Author       *AuthorRef       `json:"author"`
	ProgramID    *uuid.UUID       `json:"program"`
	Media        []media.MediaDTO `json:"media"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// CreateArticleInput holds creation-time article data.
type CreateArticleInput struct {
	Title         string
	Content       string
	Excerpt       *string
	CoverMediaID  *uuid.UUID
	CoverImageURL *string
	MediaIDs      []uuid.UUID
	ProgramID     *uuid.UUID
	AuthorID      *uuid.UUID
}

// UpdateArticleInput captures partial article mutation. A non-nil MediaIDs
// replaces the inline media set wholesale.
type UpdateArticleInput struct {
	Title         *string
	Content       *string
	Excerpt       *string
	CoverMediaID  *uuid.UUID
	CoverImageURL *string
	MediaIDs      *[]uuid.UUID
	ProgramID     *uuid.UUID
}

// RowWithJoins is an article row joined with author and cover media.
type RowWithJoins struct {
	models.Article `gorm:"embedded"`
	AuthorUsername *string `gorm:"column:author_username"`
	CoverURL       *string `gorm:"column:cover_url"`
	CoverThumb     *string `gorm:"column:cover_thumb"`
}

// FromRow maps a joined article row plus its inline media into a DTO. The
// cover image resolves thumbnail first, then media url, then the legacy
// cover_image_url column.
func FromRow(row *RowWithJoins, inline []media.MediaDTO) *ArticleDTO {
	if row == nil {
		return nil
	}
	if inline == nil {
		inline = []media.MediaDTO{}
	}

	dto := &ArticleDTO{
		ID:           row.ID,
		Title:        row.Title,
		Slug:         row.Slug,
		Content:      row.Content,
		Excerpt:      row.Excerpt,
		CoverMediaID: row.CoverMediaID,
		ProgramID:    row.ProgramID,
		Media:        inline,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}

	switch {
	case row.CoverThumb != nil:
		dto.CoverImage = row.CoverThumb
	case row.CoverURL != nil:
		dto.CoverImage = row.CoverURL
	default:
		dto.CoverImage = row.CoverImageURL
	}

	if row.AuthorUsername != nil {
		dto.Author = &AuthorRef{Username: *row.AuthorUsername}
	}

	return dto
}
