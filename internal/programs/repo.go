package programs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// LinkLists carries the three program link tables' contents for a write.
// Each list only takes effect when non-nil.
type LinkLists struct {
	MediaIDs   *[]uuid.UUID
	ArtworkIDs *[]uuid.UUID
	ArticleIDs *[]uuid.UUID
}

// Repository handles program persistence, including the link tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to program operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all programs, most recently starting first.
func (r *Repository) List(ctx context.Context) ([]models.Program, error) {
	var rows []models.Program
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single program.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var row models.Program
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create persists the program and its link rows in one transaction.
func (r *Repository) Create(ctx context.Context, program *models.Program, links LinkLists) error {
	if program == nil {
		return fmt.Errorf("program is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(program).Error; err != nil {
			return err
		}
		return replaceLinks(tx, program.ID, links, false)
	})
}

// Update saves the program; each non-nil link list is replaced wholesale.
func (r *Repository) Update(ctx context.Context, program *models.Program, links LinkLists) error {
	if program == nil {
		return fmt.Errorf("program is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(program).Error; err != nil {
			return err
		}
		return replaceLinks(tx, program.ID, links, true)
	})
}

// Delete removes the program row; link rows cascade in the schema.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Program{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListProgramMedia returns documentation media for the given programs in one query.
func (r *Repository) ListProgramMedia(ctx context.Context, programIDs []uuid.UUID) ([]ProgramMediaRow, error) {
	return r.listLinkedMedia(ctx, "program_media", programIDs)
}

// ListProgramArtworks returns exhibited artworks for the given programs in one query.
func (r *Repository) ListProgramArtworks(ctx context.Context, programIDs []uuid.UUID) ([]ProgramMediaRow, error) {
	return r.listLinkedMedia(ctx, "program_artworks", programIDs)
}

func (r *Repository) listLinkedMedia(ctx context.Context, linkTable string, programIDs []uuid.UUID) ([]ProgramMediaRow, error) {
	if len(programIDs) == 0 {
		return nil, nil
	}
	var rows []ProgramMediaRow
	if err := r.db.WithContext(ctx).
		Table(linkTable+" pm").
		Select("pm.program_id, m.*, a.name AS artist_name").
		Joins("JOIN media m ON pm.media_id = m.id").
		Joins("LEFT JOIN artists a ON m.artist_id = a.id").
		Where("pm.program_id IN ?", programIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListProgramArticles returns linked articles with their author and cover
// joins for the given programs in one query.
func (r *Repository) ListProgramArticles(ctx context.Context, programIDs []uuid.UUID) ([]ProgramArticleRow, error) {
	if len(programIDs) == 0 {
		return nil, nil
	}
	var rows []ProgramArticleRow
	if err := r.db.WithContext(ctx).
		Table("program_articles pa").
		Select("pa.program_id AS link_program_id, a.*, u.username AS author_username, m.url AS cover_url, m.thumbnail_url AS cover_thumb").
		Joins("JOIN articles a ON pa.article_id = a.id").
		Joins("LEFT JOIN users u ON a.author_id = u.id").
		Joins("LEFT JOIN media m ON a.cover_media_id = m.id").
		Where("pa.program_id IN ?", programIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func replaceLinks(tx *gorm.DB, programID uuid.UUID, links LinkLists, clearFirst bool) error {
	if links.MediaIDs != nil {
		if clearFirst {
			if err := tx.Delete(&models.ProgramMedia{}, "program_id = ?", programID).Error; err != nil {
				return err
			}
		}
		rows := make([]models.ProgramMedia, 0, len(*links.MediaIDs))
		for _, mediaID := range *links.MediaIDs {
			rows = append(rows, models.ProgramMedia{ProgramID: programID, MediaID: mediaID})
		}
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return err
			}
		}
	}
	if links.ArtworkIDs != nil {
		if clearFirst {
			if err := tx.Delete(&models.ProgramArtwork{}, "program_id = ?", programID).Error; err != nil {
				return err
			}
		}
		rows := make([]models.ProgramArtwork, 0, len(*links.ArtworkIDs))
		for _, mediaID := range *links.ArtworkIDs {
			rows = append(rows, models.ProgramArtwork{ProgramID: programID, MediaID: mediaID})
		}
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return err
			}
		}
	}
	if links.ArticleIDs != nil {
		if clearFirst {
			if err := tx.Delete(&models.ProgramArticle{}, "program_id = ?", programID).Error; err != nil {
				return err
			}
		}
		rows := make([]models.ProgramArticle, 0, len(*links.ArticleIDs))
		for _, articleID := range *links.ArticleIDs {
			rows = append(rows, models.ProgramArticle{ProgramID: programID, ArticleID: articleID})
		}
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
