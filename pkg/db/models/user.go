package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/edsu-house/edsu-backend/pkg/enums"
)

// User represents a dashboard account.
type User struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string             `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string             `gorm:"column:password_hash;not null"`
	Role         enums.UserRole     `gorm:"column:role;not null;default:'editor'"`
	Organization enums.Organization `gorm:"column:organization;not null;default:'EDSU'"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
