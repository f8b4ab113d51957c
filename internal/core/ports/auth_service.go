package ports

import (
	"context"
	"time"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, login, password string) (*domain.AccessToken, error)
}

// PasswordHasher is a salted one-way hash with a verify operation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify returns nil when password matches hash.
	Verify(hash, password string) error
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	TTL() time.Duration
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// LoginThrottle counts failed logins per account.
type LoginThrottle interface {
	// Blocked reports whether login has exhausted its failure budget.
	Blocked(ctx context.Context, login string) (bool, error)
	RegisterFailure(ctx context.Context, login string) error
	Reset(ctx context.Context, login string) error
}
