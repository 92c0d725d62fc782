package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// Repository handles media persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to media operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("media m").
		Select("m.*, a.name AS artist_name").
		Joins("LEFT JOIN artists a ON m.artist_id = a.id")
}

// List returns all media joined with artist names, newest first.
func (r *Repository) List(ctx context.Context) ([]RowWithArtist, error) {
	var rows []RowWithArtist
	if err := r.joined(ctx).Order("m.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single media row with its artist name.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*RowWithArtist, error) {
	var row RowWithArtist
	result := r.joined(ctx).Where("m.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// ListByArtistIDs returns media for the given artists, newest first.
func (r *Repository) ListByArtistIDs(ctx context.Context, artistIDs []uuid.UUID) ([]RowWithArtist, error) {
	if len(artistIDs) == 0 {
		return nil, nil
	}
	var rows []RowWithArtist
	if err := r.joined(ctx).
		Where("m.artist_id IN ?", artistIDs).
		Order("m.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create persists a new media row. Rows flagged as hero atomically demote
// every other hero row in the same transaction.
func (r *Repository) Create(ctx context.Context, m *models.Media) error {
	if m == nil {
		return fmt.Errorf("media is required")
	}
	if !m.IsHero {
		return r.db.WithContext(ctx).Create(m).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&models.Media{}).
			Where("id <> ?", m.ID).
			Update("is_hero", false).Error
	})
}

// Update saves the provided media row, keeping the hero flag exclusive.
func (r *Repository) Update(ctx context.Context, m *models.Media) error {
	if m == nil {
		return fmt.Errorf("media is required")
	}
	if !m.IsHero {
		return r.db.WithContext(ctx).Save(m).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(m).Error; err != nil {
			return err
		}
		return tx.Model(&models.Media{}).
			Where("id <> ?", m.ID).
			Update("is_hero", false).Error
	})
}

// ReplaceHero atomically swaps the hero set for the provided ids.
func (r *Repository) ReplaceHero(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Media{}).
			Where("is_hero = ?", true).
			Update("is_hero", false).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&models.Media{}).
			Where("id IN ?", ids).
			Update("is_hero", true).Error
	})
}

// Delete removes the media row and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Media{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByArtist reports how many media rows reference the artist.
func (r *Repository) CountByArtist(ctx context.Context, artistID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("artist_id = ?", artistID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
