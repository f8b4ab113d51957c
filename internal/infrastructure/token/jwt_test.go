package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

var testUser = &domain.User{ID: "u-1", Login: "op1", Role: domain.RoleOperator}

func TestJWTIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewJWTIssuer("", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestJWTIssuer_DefaultTTL(t *testing.T) {
	iss, err := NewJWTIssuer("secret", 0)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if iss.TTL() != DefaultTTL {
		t.Fatalf("expected %v, got %v", DefaultTTL, iss.TTL())
	}
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	iss, _ := NewJWTIssuer("secret", time.Minute)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return fixed }

	signed, err := iss.Issue(testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, err := iss.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c.Subject != "u-1" || c.Login != "op1" || c.Role != domain.RoleOperator {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if !c.ExpiresAt.Equal(fixed.Add(time.Minute)) {
		t.Fatalf("expected expiry %v, got %v", fixed.Add(time.Minute), c.ExpiresAt)
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	iss, _ := NewJWTIssuer("secret", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	iss.now = func() time.Time { return issuedAt }
	signed, _ := iss.Issue(testUser)

	iss.now = time.Now
	if _, err := iss.Verify(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	a, _ := NewJWTIssuer("secret-a", time.Minute)
	b, _ := NewJWTIssuer("secret-b", time.Minute)
	signed, _ := a.Issue(testUser)

	if _, err := b.Verify(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestJWTIssuer_RejectsOtherAlgorithms(t *testing.T) {
	iss, _ := NewJWTIssuer("secret", time.Minute)
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub":  "u-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})
	signed, err := tkn.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := iss.Verify(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for HS512 token, got %v", err)
	}
}

func TestJWTIssuer_RequiresExpiry(t *testing.T) {
	iss, _ := NewJWTIssuer("secret", time.Minute)
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1", "role": "admin"})
	signed, _ := tkn.SignedString([]byte("secret"))

	if _, err := iss.Verify(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for token without exp, got %v", err)
	}
}
