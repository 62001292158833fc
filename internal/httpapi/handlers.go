package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"click2dial/internal/audit"
	"click2dial/internal/auth"
	"click2dial/internal/calls"
	"click2dial/internal/directory"
	"click2dial/internal/rbac"
	"click2dial/internal/reporting"
	"click2dial/internal/switchcfg"
	"click2dial/pkg/logger"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Auth     *auth.Manager
	Calls    *calls.Service
	Switches *switchcfg.Service
	Reports  *reporting.Service
	// Directory stores users and parties. It also supplies the stored
	// language for error messages when a request has no Accept-Language.
	Directory Directory
	// Audit records user changes; nil skips them.
	Audit *audit.Service

	// Health checks backing stores; nil means always healthy.
	Health func(ctx context.Context) error
	// DevTokens enables POST /v1/auth/token. Never in production.
	DevTokens bool
}

// Directory is the part of the directory store the handlers use.
type Directory interface {
	User(ctx context.Context, tenantID, userID string) (directory.User, error)
	SaveUser(ctx context.Context, u directory.User) error
	SaveParty(ctx context.Context, p directory.Party) error
}

type identity struct {
	TenantID string
	UserID   string
	Role     string
}

// requireIdentity reads the identity set by auth.RequireAccessToken.
func requireIdentity(c *gin.Context) (identity, bool) {
	id, _ := auth.IdentityFrom(c.Request.Context())
	if id.TenantID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "tenant_id required"})
		return identity{}, false
	}
	if id.UserID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id required"})
		return identity{}, false
	}
	return identity{TenantID: id.TenantID, UserID: id.UserID, Role: id.Role}, true
}

// --- Health ---

func (h Handlers) Healthz(c *gin.Context) {
	if h.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Health(ctx); err != nil {
			logger.FromGin(c).Warn("health check failed", "err", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- Auth ---

type tokenRequest struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// IssueDevToken issues a JWT pair without checking credentials. It exists for
// local development and is only routed when DevTokens is set.
func (h Handlers) IssueDevToken(c *gin.Context) {
	if !h.DevTokens {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.TenantID == "" || !rbac.IsKnown(req.Role) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, tenant_id and a known role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.TenantID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, pair)
}
