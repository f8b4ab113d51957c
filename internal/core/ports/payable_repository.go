package ports

import (
	"context"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

// PayableRepository persists payables.
type PayableRepository interface {
	Create(ctx context.Context, p *domain.Payable) error
	FindByID(ctx context.Context, id string) (*domain.Payable, error)
	List(ctx context.Context) ([]*domain.Payable, error)
	Update(ctx context.Context, id string, patch domain.PayablePatch) (*domain.Payable, error)
	// Delete removes the payable and returns its prior state.
	Delete(ctx context.Context, id string) (*domain.Payable, error)
	// CountByAssignor returns how many payables reference the given assignor.
	CountByAssignor(ctx context.Context, assignorID string) (int64, error)
}
