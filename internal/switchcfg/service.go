package switchcfg

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"click2dial/internal/audit"
	"click2dial/pkg/logger"
)

// Auditor records configuration changes. *audit.Service implements it.
type Auditor interface {
	LogSwitchChange(ctx context.Context, tenantID string, actor audit.Actor, switchID, metadata string) error
}

// Service resolves and saves switch settings.
//
// Cache and auditor are optional. Cache failures degrade to the repository;
// audit failures are logged.
type Service struct {
	repo    Repository
	cache   *Cache
	auditor Auditor
	clock   func() time.Time
}

func NewService(repo Repository, cache *Cache, auditor Auditor) *Service {
	return &Service{repo: repo, cache: cache, auditor: auditor, clock: time.Now}
}

// Resolve returns the tenant's default switch server. A tenant with a single
// server uses it even when it is not flagged default. ErrNotFound means the
// tenant has nothing configured.
func (s *Service) Resolve(ctx context.Context, tenantID string) (Settings, error) {
	return s.cached(ctx, defaultKey(tenantID), func() (Settings, error) {
		def, err := s.repo.Default(ctx, tenantID)
		if !errors.Is(err, ErrNotFound) {
			return def, err
		}
		all, err := s.repo.List(ctx, tenantID)
		if err != nil {
			return Settings{}, err
		}
		if len(all) == 1 {
			return all[0], nil
		}
		return Settings{}, ErrNotFound
	})
}

// Get returns one switch server by id.
func (s *Service) Get(ctx context.Context, tenantID, id string) (Settings, error) {
	return s.cached(ctx, serverKey(tenantID, id), func() (Settings, error) {
		return s.repo.Get(ctx, tenantID, id)
	})
}

func (s *Service) List(ctx context.Context, tenantID string) ([]Settings, error) {
	return s.repo.List(ctx, tenantID)
}

// Save validates and stores settings, then drops stale cache entries and
// writes an audit event.
func (s *Service) Save(ctx context.Context, actor audit.Actor, in Settings) (Settings, error) {
	in.UpdatedAt = s.clock().UTC().Truncate(time.Microsecond)
	if err := Validate(in); err != nil {
		return Settings{}, err
	}
	if err := s.repo.Upsert(ctx, in); err != nil {
		return Settings{}, err
	}

	log := logger.From(ctx)
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, in.TenantID, in.ID); err != nil {
			log.Warn("switch settings cache invalidation failed", "tenant_id", in.TenantID, "switch_id", in.ID, "err", err)
		}
	}
	if s.auditor != nil {
		meta, _ := json.Marshal(in.Redacted())
		if err := s.auditor.LogSwitchChange(ctx, in.TenantID, actor, in.ID, string(meta)); err != nil {
			log.Warn("audit switch change failed", "tenant_id", in.TenantID, "switch_id", in.ID, "err", err)
		}
	}
	log.Info("switch settings saved", "tenant_id", in.TenantID, "switch_id", in.ID, "is_default", in.IsDefault)
	return in, nil
}

func (s *Service) cached(ctx context.Context, key string, load func() (Settings, error)) (Settings, error) {
	log := logger.From(ctx)
	if s.cache != nil {
		hit, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("switch settings cache read failed", "key", key, "err", err)
		} else if ok {
			return hit, nil
		}
	}

	out, err := load()
	if err != nil {
		return Settings{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out); err != nil {
			log.Warn("switch settings cache write failed", "key", key, "err", err)
		}
	}
	return out, nil
}
