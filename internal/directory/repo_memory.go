package directory

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory directory for tests and local runs.
type MemoryRepo struct {
	mu      sync.Mutex
	users   map[[2]string]User
	parties map[[2]string]Party
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: map[[2]string]User{}, parties: map[[2]string]Party{}}
}

func (r *MemoryRepo) User(ctx context.Context, tenantID, userID string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[[2]string{tenantID, userID}]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) SaveUser(ctx context.Context, u User) error {
	if err := ValidateUser(u); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[[2]string{u.TenantID, u.ID}] = u
	return nil
}

func (r *MemoryRepo) DisplayName(ctx context.Context, tenantID, partyRef string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parties[[2]string{tenantID, partyRef}].DisplayName, nil
}

func (r *MemoryRepo) SaveParty(ctx context.Context, p Party) error {
	if err := ValidateParty(p); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parties[[2]string{p.TenantID, p.ID}] = p
	return nil
}
