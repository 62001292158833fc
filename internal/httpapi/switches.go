package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"click2dial/internal/audit"
	"click2dial/internal/switchcfg"
	"click2dial/pkg/logger"
)

// ListSwitches returns the tenant's switch servers without secrets.
// RBAC: owner or super_admin.
func (h Handlers) ListSwitches(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	all, err := h.Switches.List(c.Request.Context(), id.TenantID)
	if err != nil {
		logger.FromGin(c).Error("list switches failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "switch lookup failed"})
		return
	}
	out := make([]switchcfg.Settings, 0, len(all))
	for _, s := range all {
		out = append(out, s.Redacted())
	}
	c.JSON(http.StatusOK, gin.H{"switches": out})
}

// PutSwitch creates or updates a switch server. Fields missing from the body
// keep their stored value, or the default for a new server; an omitted secret
// keeps the stored one.
// RBAC: owner or super_admin.
func (h Handlers) PutSwitch(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	switchID := c.Param("id")
	ctx := c.Request.Context()

	s, err := h.Switches.Get(ctx, id.TenantID, switchID)
	if errors.Is(err, switchcfg.ErrNotFound) {
		s = switchcfg.New(id.TenantID, switchID)
	} else if err != nil {
		logger.FromGin(c).Error("switch lookup failed", "switch_id", switchID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "switch lookup failed"})
		return
	}

	if err := c.ShouldBindJSON(&s); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// The path and the token decide where the record lives.
	s.TenantID = id.TenantID
	s.ID = switchID

	saved, err := h.Switches.Save(ctx, audit.Actor{UserID: id.UserID, Role: id.Role, IP: c.ClientIP()}, s)
	if errors.Is(err, switchcfg.ErrInvalid) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid settings", "details": err.Error()})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("save switch failed", "switch_id", switchID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, saved.Redacted())
}
