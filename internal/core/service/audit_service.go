package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/api/metrics"
	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists entries through repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit entry.
func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) error {
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	start := time.Now()
	err := s.repo.Insert(ctx, &entry)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.AuditWriteDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("record audit: %w", err)
	}

	s.log.Debug().
		Str("entity", entry.Entity).
		Str("entity_id", entry.EntityID).
		Str("action", entry.Action).
		Str("actor", entry.Actor).
		Msg("audit recorded")
	return nil
}

// recordMutation enqueues an audit entry for a successful write and bumps the
// mutation counter. A nil recorder only updates the counter.
func recordMutation(rec ports.AuditRecorder, entity, id, action, actor string) {
	metrics.RecordsMutatedTotal.WithLabelValues(entity, action).Inc()
	if rec == nil {
		return
	}
	rec.Enqueue(domain.AuditEntry{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Actor:    actor,
		Success:  true,
		At:       time.Now().UTC(),
	})
}
