package calls

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryRepo keeps attempts in memory. It enforces tenant isolation on reads.
type MemoryRepo struct {
	mu       sync.Mutex
	attempts []Attempt
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Record(ctx context.Context, a Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, a)
	return nil
}

// ListAttempts returns the tenant's attempts created in [from, to),
// optionally for one user, oldest first.
func (r *MemoryRepo) ListAttempts(ctx context.Context, tenantID string, from, to time.Time, userID string) ([]Attempt, error) {
	if tenantID == "" {
		return nil, errors.New("calls: tenant_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Attempt, 0)
	for _, a := range r.attempts {
		if a.TenantID != tenantID {
			continue
		}
		if a.CreatedAt.Before(from) || !a.CreatedAt.Before(to) {
			continue
		}
		if userID != "" && a.UserID != userID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *MemoryRepo) Attempts() []Attempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Attempt, len(r.attempts))
	copy(out, r.attempts)
	return out
}
