package programs

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/internal/articles"
	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// ProgramDTO is a program with its documentation media, exhibited artworks
// and related articles attached. The slices are never nil.
type ProgramDTO struct {
	ID          uuid.UUID             `json:"id"`
	Title       string                `json:"title"`
	Description *string               `json:"description"`
	StartDate   time.Time             `json:"startDate"`
	EndDate     time.Time             `json:"endDate"`
	Media       []media.MediaDTO      `json:"media"`
	Artworks    []media.MediaDTO      `json:"artworks"`
	Articles    []articles.ArticleDTO `json:"articles"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// CreateProgramInput holds creation-time program data plus its link lists.
type CreateProgramInput struct {
	Title       string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	MediaIDs    []uuid.UUID
	ArtworkIDs  []uuid.UUID
	ArticleIDs  []uuid.UUID
}

// UpdateProgramInput captures partial program mutation. A non-nil link list
// replaces that list wholesale; nil leaves it untouched.
type UpdateProgramInput struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	MediaIDs    *[]uuid.UUID
	ArtworkIDs  *[]uuid.UUID
	ArticleIDs  *[]uuid.UUID
}

// ProgramMediaRow is a media row joined through one of the program link tables.
type ProgramMediaRow struct {
	media.RowWithArtist `gorm:"embedded"`
	ProgramID           uuid.UUID `gorm:"column:program_id"`
}

// ProgramArticleRow is an article row joined through program_articles. The
// link column is aliased so it cannot collide with the article's own
// program_id.
type ProgramArticleRow struct {
	articles.RowWithJoins `gorm:"embedded"`
	LinkProgramID         uuid.UUID `gorm:"column:link_program_id"`
}

// FromModel maps a program and its pre-grouped attachments into a DTO.
func FromModel(p *models.Program, att Attachments) *ProgramDTO {
	if p == nil {
		return nil
	}
	dto := &ProgramDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Media:       att.Media,
		Artworks:    att.Artworks,
		Articles:    att.Articles,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if dto.Media == nil {
		dto.Media = []media.MediaDTO{}
	}
	if dto.Artworks == nil {
		dto.Artworks = []media.MediaDTO{}
	}
	if dto.Articles == nil {
		dto.Articles = []articles.ArticleDTO{}
	}
	return dto
}

// Attachments holds one program's resolved related entities.
type Attachments struct {
	Media    []media.MediaDTO
	Artworks []media.MediaDTO
	Articles []articles.ArticleDTO
}
