package reporting

import (
	"context"
	"errors"
	"time"

	"click2dial/internal/calls"
	"click2dial/internal/dialerr"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// MaxRange bounds a single summary query.
const MaxRange = 366 * 24 * time.Hour

// Repository abstracts data access for reporting.
// Implementations must filter by tenant. *calls.SQLRepo implements it.
type Repository interface {
	ListAttempts(ctx context.Context, tenantID string, from, to time.Time, userID string) ([]calls.Attempt, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) DialSummary(ctx context.Context, req DialSummaryRequest) (DialSummary, error) {
	if req.TenantID == "" {
		return DialSummary{}, ErrInvalidRequest
	}
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return DialSummary{}, ErrInvalidRequest
	}
	if req.Range.To.Sub(req.Range.From) > MaxRange {
		return DialSummary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return DialSummary{}, errors.New("reporting: repository not configured")
	}

	rows, err := s.repo.ListAttempts(ctx, req.TenantID, req.Range.From, req.Range.To, req.UserID)
	if err != nil {
		return DialSummary{}, err
	}

	out := DialSummary{
		TenantID:       req.TenantID,
		UserID:         req.UserID,
		Range:          req.Range,
		FailuresByKind: map[dialerr.Kind]int{},
		ByRegion:       map[string]int{},
	}
	for _, a := range rows {
		out.TotalAttempts++
		switch a.Status {
		case calls.StatusOriginated:
			out.Originated++
			out.ByRegion[a.DestinationRegion]++
		case calls.StatusFailed:
			out.Failed++
			out.FailuresByKind[a.ErrorKind]++
		}
	}
	if out.TotalAttempts > 0 {
		out.SuccessRate = float64(out.Originated) / float64(out.TotalAttempts)
	}
	return out, nil
}
