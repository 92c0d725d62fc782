package beem

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/internal/repo"
	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// Repository handles BE-EM catalog persistence.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) joined(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Table("be_em b").
		Select("b.*, m.url AS media_url, m.thumbnail_url AS media_thumb").
		Joins("LEFT JOIN media m ON b.media_id = m.id")
}

// List returns every book, newest first.
func (r *Repository) List(ctx context.Context) ([]RowWithMedia, error) {
	var rows []RowWithMedia
	if err := r.joined(ctx).Order("b.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*RowWithMedia, error) {
	var row RowWithMedia
	result := r.joined(ctx).Where("b.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *Repository) Create(ctx context.Context, book *models.BeEm) error {
	if book == nil {
		return fmt.Errorf("book is required")
	}
	return r.DB(ctx).Create(book).Error
}

func (r *Repository) Update(ctx context.Context, book *models.BeEm) error {
	if book == nil {
		return fmt.Errorf("book is required")
	}
	return r.DB(ctx).Save(book).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.DB(ctx).Delete(&models.BeEm{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
