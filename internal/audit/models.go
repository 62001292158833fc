package audit

import "time"

// Event is an immutable, append-only audit log record.
//
// Invariants:
// - Events are never updated or deleted.
// - tenant_id is required for tenancy isolation.
// - actor and ip capture are best-effort; do not block dials on audit failures.
type Event struct {
	ID       string    `json:"id" db:"id"`
	TenantID string    `json:"tenant_id" db:"tenant_id"`
	Type     EventType `json:"type" db:"type"`

	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`
	IPAddress   string `json:"ip_address,omitempty" db:"ip_address"`

	// Target identifiers, depending on the event type. User changes name the
	// user in Message and carry the record in Metadata.
	SwitchID  string `json:"switch_id,omitempty" db:"switch_id"`
	AttemptID string `json:"attempt_id,omitempty" db:"attempt_id"`

	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON. Never put switch secrets here.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeSwitchChange EventType = "switch_config_changed"
	EventTypeDial         EventType = "dial_attempt"
	EventTypeUserChange   EventType = "directory_user_changed"
)

// Actor is who caused an event.
type Actor struct {
	UserID string
	Role   string
	IP     string
}
