package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"click2dial/internal/reporting"
	"click2dial/pkg/logger"
)

// defaultReportWindow applies when a query gives no range.
const defaultReportWindow = 24 * time.Hour

// DialReport summarizes the tenant's click-to-dial attempts.
// Query: from, to (RFC 3339, default last 24h), user_id (optional).
// RBAC: owner, analyst or super_admin.
func (h Handlers) DialReport(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	to := time.Now().UTC()
	from := to.Add(-defaultReportWindow)
	var err error
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC 3339"})
			return
		}
		if c.Query("from") == "" {
			from = to.Add(-defaultReportWindow)
		}
	}
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC 3339"})
			return
		}
	}

	out, err := h.Reports.DialSummary(c.Request.Context(), reporting.DialSummaryRequest{
		TenantID: id.TenantID,
		UserID:   c.Query("user_id"),
		Range:    reporting.TimeRange{From: from, To: to},
	})
	if errors.Is(err, reporting.ErrInvalidRequest) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
		return
	}
	if err != nil {
		logger.FromGin(c).Error("dial report failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}
