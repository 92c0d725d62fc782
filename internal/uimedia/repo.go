package uimedia

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// Repository handles ui_media persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every placed asset, newest first.
func (r *Repository) List(ctx context.Context) ([]models.UIMedia, error) {
	var rows []models.UIMedia
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.UIMedia, error) {
	var row models.UIMedia
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByLocation returns the newest public asset placed at the given
// location and slot index.
func (r *Repository) FindByLocation(ctx context.Context, locationID string, index int) (*models.UIMedia, error) {
	var row models.UIMedia
	err := r.db.WithContext(ctx).
		Where("? = ANY(location_ids) AND idx = ? AND is_public", locationID, index).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, m *models.UIMedia) error {
	if m == nil {
		return fmt.Errorf("ui media is required")
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *Repository) Update(ctx context.Context, m *models.UIMedia) error {
	if m == nil {
		return fmt.Errorf("ui media is required")
	}
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UIMedia{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
