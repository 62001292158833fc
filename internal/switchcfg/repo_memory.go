package switchcfg

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests and local runs.
type MemoryRepo struct {
	mu      sync.Mutex
	servers map[string]map[string]Settings // tenant -> id -> settings
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{servers: map[string]map[string]Settings{}}
}

func (r *MemoryRepo) Default(ctx context.Context, tenantID string) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sortedLocked(tenantID) {
		if s.IsDefault {
			return s, nil
		}
	}
	return Settings{}, ErrNotFound
}

func (r *MemoryRepo) Get(ctx context.Context, tenantID, id string) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.servers[tenantID][id]
	if !ok {
		return Settings{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := r.servers[s.TenantID]
	if byID == nil {
		byID = map[string]Settings{}
		r.servers[s.TenantID] = byID
	}
	if s.IsDefault {
		for id, other := range byID {
			other.IsDefault = false
			byID[id] = other
		}
	}
	byID[s.ID] = s
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, tenantID string) ([]Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked(tenantID), nil
}

func (r *MemoryRepo) sortedLocked(tenantID string) []Settings {
	var out []Settings
	for _, s := range r.servers[tenantID] {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
