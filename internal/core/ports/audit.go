package ports

import (
	"context"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditRecorder accepts audit entries without blocking the caller.
type AuditRecorder interface {
	Enqueue(entry domain.AuditEntry)
}

// AuditService writes a single audit entry.
type AuditService interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
