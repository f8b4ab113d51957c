package ports

import (
	"context"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

type AssignorService interface {
	Create(ctx context.Context, actor string, a domain.Assignor) (*domain.Assignor, error)
	FindAll(ctx context.Context) ([]*domain.Assignor, error)
	FindOne(ctx context.Context, id string) (*domain.Assignor, error)
	Update(ctx context.Context, actor, id string, patch domain.AssignorPatch) (*domain.Assignor, error)
	Remove(ctx context.Context, actor, id string) (*domain.Assignor, error)
}
