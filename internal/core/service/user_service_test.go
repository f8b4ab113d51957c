package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func TestUserService_Create_DefaultsAndHash(t *testing.T) {
	repo := newStubUserRepo()
	audit := &recordingAudit{}
	svc := NewUserService(repo, stubHasher{}, audit, zerolog.Nop())

	user, err := svc.Create(context.Background(), "admin", ports.CreateUserInput{Login: "op1", Password: "secret1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == "" || user.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned id and createdAt, got %+v", user)
	}
	if user.Role != domain.RoleOperator {
		t.Fatalf("expected default role operator, got %q", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.PasswordHash != "hashed:secret1" {
		t.Fatalf("expected hashed password stored, got %q", stored.PasswordHash)
	}

	entry := audit.last()
	if entry.Entity != domain.EntityUser || entry.Action != domain.ActionCreate || entry.Actor != "admin" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestUserService_Create_DuplicateLogin(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), stubHasher{}, nil, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "admin", ports.CreateUserInput{Login: "op1", Password: "secret1"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := svc.Create(ctx, "admin", ports.CreateUserInput{Login: "op1", Password: "secret2"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_Partial(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, stubHasher{}, nil, zerolog.Nop())
	ctx := context.Background()

	user, _ := svc.Create(ctx, "admin", ports.CreateUserInput{Login: "op1", Password: "secret1"})

	updated, err := svc.Update(ctx, "admin", user.ID, ports.UpdateUserInput{Role: strPtr(domain.RoleAdmin)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Role != domain.RoleAdmin || updated.Login != "op1" {
		t.Fatalf("unexpected user after update: %+v", updated)
	}
	stored, _ := repo.FindByID(ctx, user.ID)
	if stored.PasswordHash != "hashed:secret1" {
		t.Fatalf("password hash must not change when password omitted")
	}

	if _, err := svc.Update(ctx, "admin", user.ID, ports.UpdateUserInput{Password: strPtr("newpass")}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	stored, _ = repo.FindByID(ctx, user.ID)
	if stored.PasswordHash != "hashed:newpass" {
		t.Fatalf("expected re-hashed password, got %q", stored.PasswordHash)
	}
}

func TestUserService_Update_EmptyPatchReturnsCurrent(t *testing.T) {
	audit := &recordingAudit{}
	svc := NewUserService(newStubUserRepo(), stubHasher{}, audit, zerolog.Nop())
	ctx := context.Background()

	user, _ := svc.Create(ctx, "admin", ports.CreateUserInput{Login: "op1", Password: "secret1"})
	before := audit.count()

	got, err := svc.Update(ctx, "admin", user.ID, ports.UpdateUserInput{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got.Login != "op1" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if audit.count() != before {
		t.Fatalf("empty update must not be audited")
	}

	if _, err := svc.Update(ctx, "admin", "missing", ports.UpdateUserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_RemoveThenFind(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), stubHasher{}, nil, zerolog.Nop())
	ctx := context.Background()

	user, _ := svc.Create(ctx, "admin", ports.CreateUserInput{Login: "op1", Password: "secret1"})
	if err := svc.Remove(ctx, "admin", user.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := svc.FindOne(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	all, _ := svc.FindAll(ctx)
	if len(all) != 0 {
		t.Fatalf("removed user still listed")
	}
	if err := svc.Remove(ctx, "admin", user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second remove, got %v", err)
	}
}

func TestUserService_EnsureAdmin_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, stubHasher{}, nil, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "root", "rootpass")
	if err != nil || !created {
		t.Fatalf("expected admin created, got %v / %v", created, err)
	}
	created, err = svc.EnsureAdmin(ctx, "root", "other")
	if err != nil || created {
		t.Fatalf("expected no-op on second call, got %v / %v", created, err)
	}

	u, _ := repo.FindByLogin(ctx, "root")
	if u.Role != domain.RoleAdmin || u.PasswordHash != "hashed:rootpass" {
		t.Fatalf("unexpected seeded admin: %+v", u)
	}
}
