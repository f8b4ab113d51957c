package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/api/metrics"
	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

// AuthService implements credential login.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	audit    ports.AuditRecorder
	log      zerolog.Logger

	// decoy is verified against when the login is unknown so both failure
	// paths pay for one hash comparison.
	decoy string
}

const decoyPassword = "integrations-api:no-such-user"

// NewAuthService wires the auth flow. throttle and audit may be nil.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	s := &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		throttle: throttle,
		audit:    audit,
		log:      log,
	}
	decoy, err := hasher.Hash(decoyPassword)
	if err != nil {
		log.Warn().Err(err).Msg("failed to prepare decoy password hash")
	}
	s.decoy = decoy
	return s
}

// Login checks the credentials and issues a bearer token. Unknown login and
// wrong password both fail with domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.AccessToken, error) {
	if login == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.isBlocked(ctx, login) {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		s.log.Warn().Str("login", login).Msg("login throttled")
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.hasher.Verify(s.decoy, password)
			return nil, s.fail(ctx, login)
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, s.fail(ctx, login)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, login); err != nil {
			s.log.Warn().Err(err).Str("login", login).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.record(login, user.ID, true)
	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")

	return &domain.AccessToken{Token: token, ExpiresIn: s.tokens.TTL()}, nil
}

func (s *AuthService) isBlocked(ctx context.Context, login string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, login)
	if err != nil {
		s.log.Warn().Err(err).Str("login", login).Msg("throttle check failed, continuing")
		return false
	}
	return blocked
}

// fail records a credential failure and returns the single error callers see.
func (s *AuthService) fail(ctx context.Context, login string) error {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	if s.throttle != nil {
		if err := s.throttle.RegisterFailure(ctx, login); err != nil {
			s.log.Warn().Err(err).Str("login", login).Msg("failed to register login failure")
		}
	}
	s.record(login, "", false)
	return domain.ErrInvalidCredentials
}

func (s *AuthService) record(login, userID string, ok bool) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEntry{
		Entity:   domain.EntityUser,
		EntityID: userID,
		Action:   domain.ActionLogin,
		Actor:    login,
		Success:  ok,
		At:       time.Now().UTC(),
	})
}
