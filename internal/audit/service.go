package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
// It is append-only: there are no Update/Delete methods.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// Audit is internal-only and best-effort: callers log failures and carry on.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.TenantID == "" {
		return ErrInvalidEvent
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC().Truncate(time.Microsecond)
	}
	return s.repo.Append(ctx, e)
}

// LogSwitchChange records a change to a tenant's switch settings.
func (s *Service) LogSwitchChange(ctx context.Context, tenantID string, actor Actor, switchID, metadata string) error {
	return s.Append(ctx, Event{
		TenantID:    tenantID,
		Type:        EventTypeSwitchChange,
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		IPAddress:   actor.IP,
		SwitchID:    switchID,
		Message:     "switch settings saved",
		Metadata:    metadata,
	})
}

// LogDial records a click-to-dial attempt and its outcome.
func (s *Service) LogDial(ctx context.Context, tenantID string, actor Actor, attemptID, message string) error {
	return s.Append(ctx, Event{
		TenantID:    tenantID,
		Type:        EventTypeDial,
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		IPAddress:   actor.IP,
		AttemptID:   attemptID,
		Message:     message,
	})
}

// LogUserChange records an administrator editing a user's dial settings.
func (s *Service) LogUserChange(ctx context.Context, tenantID string, actor Actor, userID, metadata string) error {
	return s.Append(ctx, Event{
		TenantID:    tenantID,
		Type:        EventTypeUserChange,
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		IPAddress:   actor.IP,
		Message:     "user " + userID + " dial settings saved",
		Metadata:    metadata,
	})
}
