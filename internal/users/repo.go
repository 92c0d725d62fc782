package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edsu-house/edsu-backend/pkg/db/models"
)

// Repository exposes account persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every account, alphabetically.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var rows []models.User
	if err := r.db.WithContext(ctx).Order("username ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID retrieves a single account.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves the account matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameExists reports whether another account already uses the username.
func (r *Repository) UsernameExists(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new account.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// Update saves the full account row.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes an account and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
