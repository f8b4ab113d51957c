package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

type PayableService struct {
	repo      ports.PayableRepository
	assignors ports.AssignorRepository
	audit     ports.AuditRecorder
	log       zerolog.Logger
}

func NewPayableService(repo ports.PayableRepository, assignors ports.AssignorRepository, audit ports.AuditRecorder, log zerolog.Logger) *PayableService {
	return &PayableService{repo: repo, assignors: assignors, audit: audit, log: log}
}

// Create stores a payable after checking that its assignor exists.
func (s *PayableService) Create(ctx context.Context, actor string, p domain.Payable) (*domain.Payable, error) {
	if err := s.checkAssignor(ctx, p.AssignorID); err != nil {
		return nil, fmt.Errorf("create payable: %w", err)
	}
	p.EmissionDate = p.EmissionDate.UTC()
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("create payable: %w", err)
	}
	recordMutation(s.audit, domain.EntityPayable, p.ID, domain.ActionCreate, actor)
	s.log.Info().Str("payable_id", p.ID).Str("assignor_id", p.AssignorID).Str("actor", actor).Msg("payable created")
	return &p, nil
}

func (s *PayableService) FindAll(ctx context.Context) ([]*domain.Payable, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payables: %w", err)
	}
	return list, nil
}

func (s *PayableService) FindOne(ctx context.Context, id string) (*domain.Payable, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find payable: %w", err)
	}
	return p, nil
}

func (s *PayableService) Update(ctx context.Context, actor, id string, patch domain.PayablePatch) (*domain.Payable, error) {
	if patch.IsEmpty() {
		return s.FindOne(ctx, id)
	}
	if patch.AssignorID != nil {
		if err := s.checkAssignor(ctx, *patch.AssignorID); err != nil {
			return nil, fmt.Errorf("update payable: %w", err)
		}
	}
	if patch.EmissionDate != nil {
		utc := patch.EmissionDate.UTC()
		patch.EmissionDate = &utc
	}

	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update payable: %w", err)
	}
	recordMutation(s.audit, domain.EntityPayable, id, domain.ActionUpdate, actor)
	return p, nil
}

func (s *PayableService) Remove(ctx context.Context, actor, id string) (*domain.Payable, error) {
	p, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("remove payable: %w", err)
	}
	recordMutation(s.audit, domain.EntityPayable, id, domain.ActionDelete, actor)
	s.log.Info().Str("payable_id", id).Str("actor", actor).Msg("payable removed")
	return p, nil
}

func (s *PayableService) checkAssignor(ctx context.Context, assignorID string) error {
	_, err := s.assignors.FindByID(ctx, assignorID)
	if errors.Is(err, domain.ErrAssignorNotFound) {
		return domain.ErrAssignorReference
	}
	return err
}
