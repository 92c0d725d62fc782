package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/edsu-house/edsu-backend/pkg/config"
	"github.com/edsu-house/edsu-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "test-secret",
		Issuer:          "edsu-backend",
		ExpirationHours: 24,
	}
}

func testPayload() AccessTokenPayload {
	return AccessTokenPayload{
		UserID:       uuid.New(),
		Username:     "curator",
		Role:         enums.UserRoleAdmin,
		Organization: enums.OrganizationEDSU,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	payload := testPayload()
	now := time.Now()

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Errorf("user id = %s, want %s", claims.UserID, payload.UserID)
	}
	if claims.Username != payload.Username {
		t.Errorf("username = %q, want %q", claims.Username, payload.Username)
	}
	if claims.Role != payload.Role {
		t.Errorf("role = %q, want %q", claims.Role, payload.Role)
	}
	if claims.Organization != payload.Organization {
		t.Errorf("organization = %q, want %q", claims.Organization, payload.Organization)
	}
	wantExpiry := now.Add(24 * time.Hour)
	if got := claims.ExpiresAt.Time; got.Sub(wantExpiry) > time.Second || wantExpiry.Sub(got) > time.Second {
		t.Errorf("expiry = %s, want around %s", got, wantExpiry)
	}
}

func TestMintAccessTokenRejectsInvalidRole(t *testing.T) {
	payload := testPayload()
	payload.Role = enums.UserRole("superuser")

	if _, err := MintAccessToken(testJWTConfig(), time.Now(), payload); err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-48*time.Hour), testPayload())
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), testPayload())
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	other := cfg
	other.Secret = "another-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), testPayload())
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestParseAccessTokenRejectsUnsignedAlg(t *testing.T) {
	cfg := testJWTConfig()
	claims := AccessTokenClaims{
		UserID:   uuid.New(),
		Username: "curator",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none token: %v", err)
	}

	_, err = ParseAccessToken(cfg, unsigned)
	if err == nil {
		t.Fatal("expected error for alg=none token")
	}
	if !strings.Contains(err.Error(), "signing method") && !strings.Contains(err.Error(), "none") {
		t.Logf("rejection reason: %v", err)
	}
}
