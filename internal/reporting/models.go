package reporting

import (
	"time"

	"click2dial/internal/dialerr"
)

// TimeRange is half-open: [From, To).
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DialSummaryRequest requests aggregated click-to-dial metrics.
// Tenant isolation: TenantID is required.
type DialSummaryRequest struct {
	TenantID string    `json:"tenant_id"`
	Range    TimeRange `json:"range"`
	UserID   string    `json:"user_id,omitempty"`
}

type DialSummary struct {
	TenantID string    `json:"tenant_id"`
	UserID   string    `json:"user_id,omitempty"`
	Range    TimeRange `json:"range"`

	TotalAttempts int `json:"total_attempts"`
	Originated    int `json:"originated"`
	Failed        int `json:"failed"`

	// SuccessRate is Originated / TotalAttempts, 0 with no attempts.
	SuccessRate float64 `json:"success_rate"`

	FailuresByKind map[dialerr.Kind]int `json:"failures_by_kind"`
	// ByRegion counts originated attempts per destination region; "" groups
	// numbers that could not be placed.
	ByRegion map[string]int `json:"by_region"`
}
