package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

// UserService manages operator accounts.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, audit: audit, log: log}
}

// Create hashes the password and stores a new user. Role defaults to operator.
func (s *UserService) Create(ctx context.Context, actor string, in ports.CreateUserInput) (*domain.User, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleOperator
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Login:        in.Login,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	recordMutation(s.audit, domain.EntityUser, user.ID, domain.ActionCreate, actor)
	s.log.Info().Str("user_id", user.ID).Str("role", role).Str("actor", actor).Msg("user created")
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) FindOne(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Update writes only the supplied fields; the hash changes only when a new
// password is given.
func (s *UserService) Update(ctx context.Context, actor, id string, in ports.UpdateUserInput) (*domain.User, error) {
	patch := domain.UserPatch{Login: in.Login, Role: in.Role}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	var (
		user *domain.User
		err  error
	)
	if patch.IsEmpty() {
		user, err = s.repo.FindByID(ctx, id)
	} else {
		user, err = s.repo.Update(ctx, id, patch)
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if !patch.IsEmpty() {
		recordMutation(s.audit, domain.EntityUser, id, domain.ActionUpdate, actor)
	}
	return user, nil
}

func (s *UserService) Remove(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	recordMutation(s.audit, domain.EntityUser, id, domain.ActionDelete, actor)
	s.log.Info().Str("user_id", id).Str("actor", actor).Msg("user removed")
	return nil
}

// EnsureAdmin creates an admin account with the given credentials unless the
// login already exists. It reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, login, password string) (bool, error) {
	_, err := s.repo.FindByLogin(ctx, login)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("ensure admin: %w", err)
	}

	_, err = s.Create(ctx, "seed", ports.CreateUserInput{Login: login, Password: password, Role: domain.RoleAdmin})
	if errors.Is(err, domain.ErrUserExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
