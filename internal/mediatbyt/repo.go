package mediatbyt

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/repo"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// Repository handles media_tbyt persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) List(ctx context.Context) ([]models.MediaTBYT, error) {
	var rows []models.MediaTBYT
	if err := r.DB(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaTBYT, error) {
	var row models.MediaTBYT
	if err := r.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, m *models.MediaTBYT) error {
	if m == nil {
		return fmt.Errorf("media tbyt is required")
	}
	return r.DB(ctx).Create(m).Error
}

func (r *Repository) Update(ctx context.Context, m *models.MediaTBYT) error {
	if m == nil {
		return fmt.Errorf("media tbyt is required")
	}
	return r.DB(ctx).Save(m).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB(ctx).Delete(&models.MediaTBYT{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
