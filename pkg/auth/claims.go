package auth

import (
	"github.com/edsu-house/edsu-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	Username     string
	Role         enums.UserRole
	Organization enums.Organization
}

// AccessTokenClaims represents the typed JWT issued to dashboard clients.
type AccessTokenClaims struct {
	UserID       uuid.UUID          `json:"id"`
	Username     string             `json:"username"`
	Role         enums.UserRole     `json:"role"`
	Organization enums.Organization `json:"organization"`
	jwt.RegisteredClaims
}
