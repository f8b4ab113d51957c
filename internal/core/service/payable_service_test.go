package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

func newPayableFixture() (*PayableService, *stubPayableRepo, *recordingAudit) {
	assignors := newStubAssignorRepo()
	assignors.items["a1"] = domain.Assignor{ID: "a1", Name: "Foo"}
	assignors.items["a2"] = domain.Assignor{ID: "a2", Name: "Bar"}
	payables := newStubPayableRepo()
	audit := &recordingAudit{}
	return NewPayableService(payables, assignors, audit, zerolog.Nop()), payables, audit
}

func TestPayableService_CreateAndFind(t *testing.T) {
	svc, _, audit := newPayableFixture()
	ctx := context.Background()

	loc := time.FixedZone("BRT", -3*3600)
	in := domain.Payable{ID: "p1", Value: 150.25, EmissionDate: time.Date(2024, 5, 1, 9, 0, 0, 0, loc), AssignorID: "a1"}
	if _, err := svc.Create(ctx, "op", in); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.FindOne(ctx, "p1")
	if err != nil {
		t.Fatalf("FindOne returned error: %v", err)
	}
	if got.Value != 150.25 || got.AssignorID != "a1" || !got.EmissionDate.Equal(in.EmissionDate) {
		t.Fatalf("unexpected payable: %+v", got)
	}
	if got.EmissionDate.Location() != time.UTC {
		t.Fatalf("expected emission date normalised to UTC")
	}
	if audit.last().Entity != domain.EntityPayable || audit.last().Action != domain.ActionCreate {
		t.Fatalf("unexpected audit entry: %+v", audit.last())
	}
}

func TestPayableService_Create_UnknownAssignor(t *testing.T) {
	svc, repo, _ := newPayableFixture()

	_, err := svc.Create(context.Background(), "op", domain.Payable{ID: "p1", AssignorID: "ghost"})
	if !errors.Is(err, domain.ErrAssignorReference) {
		t.Fatalf("expected ErrAssignorReference, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("orphan payable must not be stored")
	}
}

func TestPayableService_Update(t *testing.T) {
	svc, _, _ := newPayableFixture()
	ctx := context.Background()
	_, _ = svc.Create(ctx, "op", domain.Payable{ID: "p1", Value: 10, AssignorID: "a1"})

	v := 20.0
	got, err := svc.Update(ctx, "op", "p1", domain.PayablePatch{Value: &v})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Value != 20 || got.AssignorID != "a1" {
		t.Fatalf("unexpected payable after update: %+v", got)
	}

	if _, err := svc.Update(ctx, "op", "p1", domain.PayablePatch{AssignorID: strPtr("ghost")}); !errors.Is(err, domain.ErrAssignorReference) {
		t.Fatalf("expected ErrAssignorReference, got %v", err)
	}
	got, err = svc.Update(ctx, "op", "p1", domain.PayablePatch{AssignorID: strPtr("a2")})
	if err != nil || got.AssignorID != "a2" {
		t.Fatalf("expected reassignment to a2, got %+v / %v", got, err)
	}
}

func TestPayableService_RemoveThenFind(t *testing.T) {
	svc, _, _ := newPayableFixture()
	ctx := context.Background()
	_, _ = svc.Create(ctx, "op", domain.Payable{ID: "p1", Value: 10, AssignorID: "a1"})

	removed, err := svc.Remove(ctx, "op", "p1")
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if removed.ID != "p1" {
		t.Fatalf("expected removed record, got %+v", removed)
	}
	if _, err := svc.FindOne(ctx, "p1"); !errors.Is(err, domain.ErrPayableNotFound) {
		t.Fatalf("expected ErrPayableNotFound, got %v", err)
	}
	all, _ := svc.FindAll(ctx)
	if len(all) != 0 {
		t.Fatalf("removed payable still listed")
	}
}
