package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

// DefaultTTL is the access token lifetime when none is configured.
const DefaultTTL = 60 * time.Second

// claims is the JWT payload: sub, login, role, iat, exp.
type claims struct {
	Login string `json:"login"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer signs and verifies HS256 access tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer returns an issuer. It fails on an empty secret.
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *JWTIssuer) TTL() time.Duration { return i.ttl }

// Issue signs a token carrying the user's id, login and role.
func (i *JWTIssuer) Issue(user *domain.User) (string, error) {
	now := i.now()
	c := claims{
		Login: user.Login,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
}

// Verify parses the token, checks the signature, algorithm and expiry, and
// returns its claims. Every failure wraps domain.ErrUnauthorized.
func (i *JWTIssuer) Verify(raw string) (*domain.Claims, error) {
	var c claims
	tkn, err := jwt.ParseWithClaims(raw, &c, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if c.Subject == "" || c.Role == "" {
		return nil, fmt.Errorf("%w: token missing identity", domain.ErrUnauthorized)
	}

	return &domain.Claims{
		Subject:   c.Subject,
		Login:     c.Login,
		Role:      c.Role,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
