package artists

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// Repository handles artist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to artist operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("artists a").
		Select("a.*, p.url AS photo_url, p.thumbnail_url AS photo_thumbnail, p.title AS photo_title").
		Joins("LEFT JOIN media p ON a.photo_media_id = p.id")
}

// List returns all artists with portraits, ordered by name.
func (r *Repository) List(ctx context.Context) ([]RowWithPhoto, error) {
	var rows []RowWithPhoto
	if err := r.joined(ctx).Order("a.name ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single artist with its portrait.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*RowWithPhoto, error) {
	var row RowWithPhoto
	result := r.joined(ctx).Where("a.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// NameExists reports whether another artist already uses the name.
func (r *Repository) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Artist{}).Where("name = ?", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new artist row.
func (r *Repository) Create(ctx context.Context, artist *models.Artist) error {
	if artist == nil {
		return fmt.Errorf("artist is required")
	}
	return r.db.WithContext(ctx).Create(artist).Error
}

// Update saves the provided artist row.
func (r *Repository) Update(ctx context.Context, artist *models.Artist) error {
	if artist == nil {
		return fmt.Errorf("artist is required")
	}
	return r.db.WithContext(ctx).Save(artist).Error
}

// Delete removes an artist row and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Artist{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
