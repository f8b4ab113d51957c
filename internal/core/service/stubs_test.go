package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/aprovame/integrations-api/internal/core/domain"
)

// --- users ---

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Login == user.Login {
			return domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Login != nil {
		u.Login = *p.Login
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// --- assignors ---

type stubAssignorRepo struct {
	items map[string]domain.Assignor
}

func newStubAssignorRepo() *stubAssignorRepo {
	return &stubAssignorRepo{items: make(map[string]domain.Assignor)}
}

func (r *stubAssignorRepo) Create(_ context.Context, a *domain.Assignor) error {
	if _, ok := r.items[a.ID]; ok {
		return domain.ErrAssignorExists
	}
	r.items[a.ID] = *a
	return nil
}

func (r *stubAssignorRepo) FindByID(_ context.Context, id string) (*domain.Assignor, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAssignorNotFound
	}
	return &a, nil
}

func (r *stubAssignorRepo) List(_ context.Context) ([]*domain.Assignor, error) {
	out := make([]*domain.Assignor, 0, len(r.items))
	for _, a := range r.items {
		a := a
		out = append(out, &a)
	}
	return out, nil
}

func (r *stubAssignorRepo) Update(_ context.Context, id string, p domain.AssignorPatch) (*domain.Assignor, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAssignorNotFound
	}
	if p.Document != nil {
		a.Document = *p.Document
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	r.items[id] = a
	return &a, nil
}

func (r *stubAssignorRepo) Delete(_ context.Context, id string) (*domain.Assignor, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAssignorNotFound
	}
	delete(r.items, id)
	return &a, nil
}

// --- payables ---

type stubPayableRepo struct {
	items    map[string]domain.Payable
	countErr error
}

func newStubPayableRepo() *stubPayableRepo {
	return &stubPayableRepo{items: make(map[string]domain.Payable)}
}

func (r *stubPayableRepo) Create(_ context.Context, p *domain.Payable) error {
	if _, ok := r.items[p.ID]; ok {
		return domain.ErrPayableExists
	}
	r.items[p.ID] = *p
	return nil
}

func (r *stubPayableRepo) FindByID(_ context.Context, id string) (*domain.Payable, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPayableNotFound
	}
	return &p, nil
}

func (r *stubPayableRepo) List(_ context.Context) ([]*domain.Payable, error) {
	out := make([]*domain.Payable, 0, len(r.items))
	for _, p := range r.items {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (r *stubPayableRepo) Update(_ context.Context, id string, patch domain.PayablePatch) (*domain.Payable, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPayableNotFound
	}
	if patch.Value != nil {
		p.Value = *patch.Value
	}
	if patch.EmissionDate != nil {
		p.EmissionDate = *patch.EmissionDate
	}
	if patch.AssignorID != nil {
		p.AssignorID = *patch.AssignorID
	}
	r.items[id] = p
	return &p, nil
}

func (r *stubPayableRepo) Delete(_ context.Context, id string) (*domain.Payable, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPayableNotFound
	}
	delete(r.items, id)
	return &p, nil
}

func (r *stubPayableRepo) CountByAssignor(_ context.Context, assignorID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var n int64
	for _, p := range r.items {
		if p.AssignorID == assignorID {
			n++
		}
	}
	return n, nil
}

// --- collaborators ---

// stubHasher prefixes instead of hashing so tests stay fast.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubHasher) Verify(hash, password string) error {
	if !strings.HasPrefix(hash, "hashed:") || hash[len("hashed:"):] != password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// countingHasher records every hash it is asked to verify against.
type countingHasher struct {
	stubHasher
	verified []string
}

func (h *countingHasher) Verify(hash, password string) error {
	h.verified = append(h.verified, hash)
	return h.stubHasher.Verify(hash, password)
}

type stubThrottle struct {
	failures map[string]int
	max      int
	err      error
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), max: max}
}

func (t *stubThrottle) Blocked(_ context.Context, login string) (bool, error) {
	if t.err != nil {
		return false, t.err
	}
	return t.failures[login] >= t.max, nil
}

func (t *stubThrottle) RegisterFailure(_ context.Context, login string) error {
	t.failures[login]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, login string) error {
	delete(t.failures, login)
	return nil
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *recordingAudit) Enqueue(e domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *recordingAudit) last() domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return domain.AuditEntry{}
	}
	return r.entries[len(r.entries)-1]
}

func (r *recordingAudit) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type stubAuditRepo struct {
	entries []*domain.AuditEntry
	err     error
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEntry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, e)
	return nil
}

var errStorage = errors.New("storage unavailable")
