package auth

import (
	"testing"
	"time"

	"github.com/helpme/helpdesk/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:     "2f6c9a41-54a0-4f5c-9a04-1d7f0b6f9c01",
		Name:   "Maria",
		Email:  "maria@example.com",
		Role:   domain.RoleTechnician,
		Active: true,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 15, 60)
	user := testUser()

	token, expiresAt, err := tm.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("access token already expired at issue time")
	}

	claims, err := tm.ParseToken(token, TokenKindAccess)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Role != domain.RoleTechnician {
		t.Errorf("claims.Role = %q, want %q", claims.Role, domain.RoleTechnician)
	}
	if claims.ID == "" {
		t.Error("claims.ID (jti) is empty")
	}
}

func TestParseTokenRejectsWrongKind(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 15, 60)
	refresh, _, err := tm.GenerateRefreshToken(testUser())
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned error: %v", err)
	}

	if _, err := tm.ParseToken(refresh, TokenKindAccess); err == nil {
		t.Error("ParseToken accepted a refresh token as an access token")
	}
	if _, err := tm.ParseToken(refresh, TokenKindRefresh); err != nil {
		t.Errorf("ParseToken rejected a valid refresh token: %v", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("secret-a", 15, 60)
	verifier := NewTokenManager("secret-b", 15, 60)

	token, _, err := issuer.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	if _, err := verifier.ParseToken(token, TokenKindAccess); err == nil {
		t.Error("ParseToken accepted a token signed with a different secret")
	}
}
