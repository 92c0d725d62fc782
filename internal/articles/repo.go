package articles

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edsu-house/edsu-backend/internal/media"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// InlineMediaRow is a media row joined through articles_media.
type InlineMediaRow struct {
	media.RowWithArtist `gorm:"embedded"`
	ArticleID           uuid.UUID `gorm:"column:article_id"`
}

// Repository handles article persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to article operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("articles a").
		Select("a.*, u.username AS author_username, m.url AS cover_url, m.thumbnail_url AS cover_thumb").
		Joins("LEFT JOIN users u ON a.author_id = u.id").
		Joins("LEFT JOIN media m ON a.cover_media_id = m.id")
}

// List returns all articles with author and cover joins, newest first.
func (r *Repository) List(ctx context.Context) ([]RowWithJoins, error) {
	var rows []RowWithJoins
	if err := r.joined(ctx).Order("a.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single article with its joins.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*RowWithJoins, error) {
	var row RowWithJoins
	result := r.joined(ctx).Where("a.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// ListInlineMedia returns inline media for the given articles in one query.
func (r *Repository) ListInlineMedia(ctx context.Context, articleIDs []uuid.UUID) ([]InlineMediaRow, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}
	var rows []InlineMediaRow
	if err := r.db.WithContext(ctx).
		Table("articles_media am").
		Select("am.article_id, m.*").
		Joins("JOIN media m ON am.media_id = m.id").
		Where("am.article_id IN ?", articleIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListSlugsLike returns every slug starting with the given base, optionally
// excluding one article (for updates).
func (r *Repository) ListSlugsLike(ctx context.Context, base string, excludeID *uuid.UUID) ([]string, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("slug LIKE ?", base+"%")
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var slugs []string
	if err := query.Pluck("slug", &slugs).Error; err != nil {
		return nil, err
	}
	return slugs, nil
}

// Create persists the article and links its inline media in one transaction.
func (r *Repository) Create(ctx context.Context, article *models.Article, mediaIDs []uuid.UUID) error {
	if article == nil {
		return fmt.Errorf("article is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return insertInlineMedia(tx, article.ID, mediaIDs)
	})
}

// Update saves the article; a non-nil mediaIDs replaces the inline media set.
func (r *Repository) Update(ctx context.Context, article *models.Article, mediaIDs *[]uuid.UUID) error {
	if article == nil {
		return fmt.Errorf("article is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		if mediaIDs == nil {
			return nil
		}
		if err := tx.Delete(&models.ArticleMedia{}, "article_id = ?", article.ID).Error; err != nil {
			return err
		}
		return insertInlineMedia(tx, article.ID, *mediaIDs)
	})
}

// Delete removes the article row and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func insertInlineMedia(tx *gorm.DB, articleID uuid.UUID, mediaIDs []uuid.UUID) error {
	if len(mediaIDs) == 0 {
		return nil
	}
	links := make([]models.ArticleMedia, 0, len(mediaIDs))
	for _, mediaID := range mediaIDs {
		links = append(links, models.ArticleMedia{ArticleID: articleID, MediaID: mediaID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
