package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"click2dial/internal/audit"
	"click2dial/internal/calls"
	"click2dial/internal/dialerr"
	"click2dial/pkg/logger"
)

type placeCallRequest struct {
	PartyRef string `json:"party_ref"`
	Number   string `json:"number"`
}

// PlaceCall rings the caller's phone and connects it to the number.
// RBAC: agent, owner or super_admin.
func (h Handlers) PlaceCall(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req placeCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	attempt, err := h.Calls.PlaceCall(c.Request.Context(), calls.PlaceCallRequest{
		TenantID:  id.TenantID,
		Actor:     audit.Actor{UserID: id.UserID, Role: id.Role, IP: c.ClientIP()},
		PartyRef:  req.PartyRef,
		RawNumber: req.Number,
	})
	if err != nil {
		h.dialError(c, id, err, gin.H{"attempt_id": attempt.ID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempt": attempt})
}

type normalizeRequest struct {
	Number string `json:"number"`
}

// Normalize previews the dial string for the caller's switch settings.
func (h Handlers) Normalize(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req normalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := h.Calls.Preview(c.Request.Context(), id.TenantID, id.UserID, req.Number)
	if err != nil {
		h.dialError(c, id, err, nil)
		return
	}
	c.JSON(http.StatusOK, p)
}

// dialError writes a classified failure: the kind as a stable code and a
// message in the caller's language.
func (h Handlers) dialError(c *gin.Context, id identity, err error, extra gin.H) {
	de := dialerr.From(err)
	if de.Kind == dialerr.KindInternal {
		logger.FromGin(c).Error("dial request failed", "err", de)
	}
	body := gin.H{
		"error":   de.Kind,
		"message": de.Kind.Message(h.language(c, id)),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(de.Kind.HTTPStatus(), body)
}

// language prefers Accept-Language, then the user's stored language.
func (h Handlers) language(c *gin.Context, id identity) language.Tag {
	if accept := c.GetHeader("Accept-Language"); accept != "" {
		return dialerr.MatchLanguage(accept)
	}
	if h.Directory != nil {
		if u, err := h.Directory.User(c.Request.Context(), id.TenantID, id.UserID); err == nil {
			return dialerr.MatchLanguage(u.Language)
		}
	}
	return dialerr.MatchLanguage()
}
