package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

type AssignorService struct {
	repo     ports.AssignorRepository
	payables ports.PayableRepository
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

func NewAssignorService(repo ports.AssignorRepository, payables ports.PayableRepository, audit ports.AuditRecorder, log zerolog.Logger) *AssignorService {
	return &AssignorService{repo: repo, payables: payables, audit: audit, log: log}
}

func (s *AssignorService) Create(ctx context.Context, actor string, a domain.Assignor) (*domain.Assignor, error) {
	if err := s.repo.Create(ctx, &a); err != nil {
		return nil, fmt.Errorf("create assignor: %w", err)
	}
	recordMutation(s.audit, domain.EntityAssignor, a.ID, domain.ActionCreate, actor)
	s.log.Info().Str("assignor_id", a.ID).Str("actor", actor).Msg("assignor created")
	return &a, nil
}

func (s *AssignorService) FindAll(ctx context.Context) ([]*domain.Assignor, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignors: %w", err)
	}
	return list, nil
}

func (s *AssignorService) FindOne(ctx context.Context, id string) (*domain.Assignor, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find assignor: %w", err)
	}
	return a, nil
}

func (s *AssignorService) Update(ctx context.Context, actor, id string, patch domain.AssignorPatch) (*domain.Assignor, error) {
	if patch.IsEmpty() {
		return s.FindOne(ctx, id)
	}
	a, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update assignor: %w", err)
	}
	recordMutation(s.audit, domain.EntityAssignor, id, domain.ActionUpdate, actor)
	return a, nil
}

// Remove deletes an assignor that no payable references and returns its
// prior state.
func (s *AssignorService) Remove(ctx context.Context, actor, id string) (*domain.Assignor, error) {
	n, err := s.payables.CountByAssignor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("remove assignor: %w", err)
	}
	if n > 0 {
		return nil, fmt.Errorf("remove assignor: %w (%d payables)", domain.ErrAssignorInUse, n)
	}

	a, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("remove assignor: %w", err)
	}
	recordMutation(s.audit, domain.EntityAssignor, id, domain.ActionDelete, actor)
	s.log.Info().Str("assignor_id", id).Str("actor", actor).Msg("assignor removed")
	return a, nil
}
