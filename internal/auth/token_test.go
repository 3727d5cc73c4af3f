package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/rollcall/internal/model"
)

func TestTokenIssuerIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	token, err := issuer.Issue("user-1", "teacher@example.com", model.RoleTeacher)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID() != "user-1" {
		t.Errorf("UserID() = %q, want %q", claims.UserID(), "user-1")
	}
	if claims.Email != "teacher@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "teacher@example.com")
	}
	if claims.Role != model.RoleTeacher {
		t.Errorf("Role = %q, want %q", claims.Role, model.RoleTeacher)
	}
}

func TestTokenIssuerRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	other := NewTokenIssuer([]byte("another-secret"), time.Hour)

	token, err := issuer.Issue("user-1", "a@b.com", model.RoleStudent)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(token); err != ErrInvalidSession {
		t.Errorf("Verify with wrong secret: err = %v, want ErrInvalidSession", err)
	}
}

func TestTokenIssuerRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)

	token, err := issuer.Issue("user-1", "a@b.com", model.RoleStudent)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidSession {
		t.Errorf("Verify of expired token: err = %v, want ErrInvalidSession", err)
	}
}

func TestTokenIssuerRejectsMalformedToken(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Verify(tt.token); err != ErrInvalidSession {
				t.Errorf("Verify(%q): err = %v, want ErrInvalidSession", tt.token, err)
			}
		})
	}
}

func TestTokenIssuerRejectsUnsignedAlgorithm(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	// alg=noneのトークンは署名が正しくても受け付けない
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "a@b.com",
		Role:  model.RoleAdmin,
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidSession {
		t.Errorf("Verify of alg=none token: err = %v, want ErrInvalidSession", err)
	}
}

func TestTokenIssuerRejectsInvalidClaims(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	tests := []struct {
		name   string
		userID string
		role   model.Role
	}{
		{"empty subject", "", model.RoleStudent},
		{"unknown role", "user-1", model.Role("superuser")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := issuer.Issue(tt.userID, "a@b.com", tt.role)
			if err != nil {
				t.Fatalf("Issue returned error: %v", err)
			}
			if _, err := issuer.Verify(token); err != ErrInvalidSession {
				t.Errorf("Verify: err = %v, want ErrInvalidSession", err)
			}
		})
	}
}

func TestTokenIssuerTTL(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), 168*time.Hour)

	if issuer.TTL() != 168*time.Hour {
		t.Errorf("TTL() = %v, want %v", issuer.TTL(), 168*time.Hour)
	}
}
