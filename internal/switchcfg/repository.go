package switchcfg

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no matching switch server is configured.
var ErrNotFound = errors.New("switchcfg: not found")

// Repository persists switch servers.
type Repository interface {
	// Default returns the tenant's server flagged is_default.
	Default(ctx context.Context, tenantID string) (Settings, error)
	Get(ctx context.Context, tenantID, id string) (Settings, error)
	// Upsert inserts or replaces s. Flagging s as default clears the flag on
	// the tenant's other servers.
	Upsert(ctx context.Context, s Settings) error
	List(ctx context.Context, tenantID string) ([]Settings, error)
}
