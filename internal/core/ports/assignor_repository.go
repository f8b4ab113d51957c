package ports

import (
	"context"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

// AssignorRepository persists assignors.
type AssignorRepository interface {
	Create(ctx context.Context, a *domain.Assignor) error
	FindByID(ctx context.Context, id string) (*domain.Assignor, error)
	List(ctx context.Context) ([]*domain.Assignor, error)
	Update(ctx context.Context, id string, patch domain.AssignorPatch) (*domain.Assignor, error)
	// Delete removes the assignor and returns its prior state.
	Delete(ctx context.Context, id string) (*domain.Assignor, error)
}
