package ports

import (
	"context"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

// CreateUserInput is the DTO passed from the transport layer to UserService.
type CreateUserInput struct {
	Login    string
	Password string
	Role     string // empty defaults to operator
}

// UpdateUserInput carries a partial update; nil fields are not touched.
type UpdateUserInput struct {
	Login    *string
	Password *string
	Role     *string
}

type UserService interface {
	Create(ctx context.Context, actor string, in CreateUserInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindOne(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, actor, id string, in UpdateUserInput) (*domain.User, error)
	Remove(ctx context.Context, actor, id string) error
}
