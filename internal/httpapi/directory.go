package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"click2dial/internal/audit"
	"click2dial/internal/directory"
	"click2dial/internal/switchcfg"
	"click2dial/pkg/logger"
)

// GetUser returns a user's dial settings.
// RBAC: owner or super_admin.
func (h Handlers) GetUser(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	userID := c.Param("id")
	u, err := h.Directory.User(c.Request.Context(), id.TenantID, userID)
	if errors.Is(err, directory.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("user lookup failed", "user_id", userID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// PutUser creates or updates the dial settings of a user. Fields missing from
// the body keep their stored value. A named switch must exist in the tenant.
// RBAC: owner or super_admin.
func (h Handlers) PutUser(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	userID := c.Param("id")
	ctx := c.Request.Context()

	u, err := h.Directory.User(ctx, id.TenantID, userID)
	if errors.Is(err, directory.ErrNotFound) {
		u = directory.User{}
	} else if err != nil {
		logger.FromGin(c).Error("user lookup failed", "user_id", userID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	if err := c.ShouldBindJSON(&u); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u.TenantID = id.TenantID
	u.ID = userID

	if u.SwitchServerID != "" {
		_, err := h.Switches.Get(ctx, id.TenantID, u.SwitchServerID)
		if errors.Is(err, switchcfg.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user", "details": "switch_server_id: unknown switch"})
			return
		}
		if err != nil {
			logger.FromGin(c).Error("switch lookup failed", "switch_id", u.SwitchServerID, "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "switch lookup failed"})
			return
		}
	}

	err = h.Directory.SaveUser(ctx, u)
	if errors.Is(err, directory.ErrInvalid) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user", "details": err.Error()})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("save user failed", "user_id", userID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Audit != nil {
		meta, _ := json.Marshal(u)
		actor := audit.Actor{UserID: id.UserID, Role: id.Role, IP: c.ClientIP()}
		if err := h.Audit.LogUserChange(ctx, id.TenantID, actor, userID, string(meta)); err != nil {
			logger.FromGin(c).Warn("audit user change failed", "user_id", userID, "err", err)
		}
	}
	c.JSON(http.StatusOK, u)
}

type partyRequest struct {
	DisplayName string `json:"display_name"`
}

// PutParty sets the display name shown on the caller's phone when dialing the
// party.
// RBAC: agent, owner or super_admin.
func (h Handlers) PutParty(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req partyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p := directory.Party{TenantID: id.TenantID, ID: c.Param("id"), DisplayName: req.DisplayName}

	err := h.Directory.SaveParty(c.Request.Context(), p)
	if errors.Is(err, directory.ErrInvalid) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid party", "details": err.Error()})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("save party failed", "party_id", p.ID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, p)
}
