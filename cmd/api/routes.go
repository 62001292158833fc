package main

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"click2dial/internal/audit"
	"click2dial/internal/auth"
	"click2dial/internal/calls"
	"click2dial/internal/config"
	"click2dial/internal/directory"
	"click2dial/internal/httpapi"
	"click2dial/internal/reporting"
	"click2dial/internal/storage"
	"click2dial/internal/switchcfg"
	"click2dial/internal/telephony"
	"click2dial/pkg/logger"
)

// buildHandlers wires storage, cache and the switch client into the services.
// Keep this file free of business logic. rdb may be nil.
func buildHandlers(cfg config.Config, db *storage.DB, rdb *redis.Client, authManager *auth.Manager) httpapi.Handlers {
	auditSvc := audit.NewService(audit.NewSQLRepo(db))
	dir := directory.NewSQLRepo(db)
	attempts := calls.NewSQLRepo(db)

	var cache *switchcfg.Cache
	if rdb != nil {
		cache = switchcfg.NewCache(rdb, cfg.Dial.SwitchCacheTTL)
	}
	switches := switchcfg.NewService(switchcfg.NewSQLRepo(db), cache, auditSvc)

	deps := calls.Deps{
		Users:    dir,
		Parties:  dir,
		Switches: switches,
		Originator: telephony.NewClient(telephony.ClientOptions{
			ConnectTimeout: cfg.AMI.ConnectTimeout,
			WriteTimeout:   cfg.AMI.WriteTimeout,
		}),
		Attempts: attempts,
		Auditor:  auditSvc,
	}
	if rdb != nil && cfg.Dial.UserConcurrency > 0 {
		deps.Guard = calls.NewRedisGuard(rdb, cfg.Dial.UserConcurrency, cfg.Dial.GuardTTL)
	}

	return httpapi.Handlers{
		Auth:      authManager,
		Calls:     calls.NewService(deps),
		Switches:  switches,
		Reports:   reporting.NewService(attempts),
		Directory: dir,
		Audit:     auditSvc,
		Health: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return err
			}
			if rdb != nil {
				return rdb.Ping(ctx).Err()
			}
			return nil
		},
		DevTokens: !cfg.IsProduction(),
	}
}

func newRouter(log *slog.Logger, h httpapi.Handlers, authManager *auth.Manager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))
	httpapi.Register(r, h, auth.RequireAccessToken(authManager))
	return r
}
