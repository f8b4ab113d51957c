package ports

import (
	"context"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

type PayableService interface {
	Create(ctx context.Context, actor string, p domain.Payable) (*domain.Payable, error)
	FindAll(ctx context.Context) ([]*domain.Payable, error)
	FindOne(ctx context.Context, id string) (*domain.Payable, error)
	Update(ctx context.Context, actor, id string, patch domain.PayablePatch) (*domain.Payable, error)
	Remove(ctx context.Context, actor, id string) (*domain.Payable, error)
}
