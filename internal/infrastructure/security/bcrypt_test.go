package security

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := h.Verify(hash, "secret1"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestBcryptHasher_VerifyMismatch(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, _ := h.Hash("secret1")

	if err := h.Verify(hash, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := h.Verify("garbage", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for malformed hash, got %v", err)
	}
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != DefaultCost {
		t.Fatalf("expected default cost %d, got %d", DefaultCost, h.cost)
	}
	if h := NewBcryptHasher(99); h.cost != DefaultCost {
		t.Fatalf("expected default cost %d, got %d", DefaultCost, h.cost)
	}
}
