package reporting

import (
	"context"
	"time"

	"click2dial/internal/calls"
)

// MemoryRepo adapts an in-memory attempt store for reporting.
type MemoryRepo struct {
	Attempts *calls.MemoryRepo
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{Attempts: calls.NewMemoryRepo()} }

func (r *MemoryRepo) ListAttempts(ctx context.Context, tenantID string, from, to time.Time, userID string) ([]calls.Attempt, error) {
	return r.Attempts.ListAttempts(ctx, tenantID, from, to, userID)
}
