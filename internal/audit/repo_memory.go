package audit

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrDuplicateEvent mirrors the primary key on audit_events.
var ErrDuplicateEvent = errors.New("audit: duplicate event id")

// MemoryRepo keeps dial and configuration events in arrival order. Tests and
// local runs without a database use it in place of SQLRepo.
type MemoryRepo struct {
	mu     sync.Mutex
	events []Event
	ids    map[string]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{ids: make(map[string]struct{})}
}

func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID != "" {
		if _, dup := r.ids[e.ID]; dup {
			return ErrDuplicateEvent
		}
		r.ids[e.ID] = struct{}{}
	}
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the stored events, oldest first. With types set,
// only events of those types are returned.
func (r *MemoryRepo) Events(types ...EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		if len(types) == 0 || slices.Contains(types, e.Type) {
			out = append(out, e)
		}
	}
	return out
}
