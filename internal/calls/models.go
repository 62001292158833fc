package calls

import (
	"time"

	"click2dial/internal/audit"
	"click2dial/internal/dialerr"
	"click2dial/internal/numbering"
)

// Attempt is the append-only record of one click-to-dial request.
//
// It ends when the switch accepts (or refuses) the originate command; what
// happens to the call afterwards is not observed.
type Attempt struct {
	ID       string `json:"id" db:"id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`
	UserID   string `json:"user_id" db:"user_id"`
	PartyRef string `json:"party_ref,omitempty" db:"party_ref"`

	RawNumber         string           `json:"raw_number" db:"raw_number"`
	DialString        string           `json:"dial_string,omitempty" db:"dial_string"`
	Branch            numbering.Branch `json:"branch,omitempty" db:"branch"`
	DestinationRegion string           `json:"destination_region,omitempty" db:"destination_region"`

	Status    Status       `json:"status" db:"status"`
	ErrorKind dialerr.Kind `json:"error_kind,omitempty" db:"error_kind"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Status string

const (
	// StatusOriginated means the switch received the originate command.
	StatusOriginated Status = "originated"
	StatusFailed     Status = "failed"
)

// PlaceCallRequest asks to ring the actor's phone and connect it to
// RawNumber. Tenant and actor come from the authenticated request.
type PlaceCallRequest struct {
	TenantID string
	Actor    audit.Actor

	// PartyRef identifies the called party; its display name becomes the
	// caller id unless the user has an override.
	PartyRef  string
	RawNumber string
}

// Preview is the dial string a number would produce for a user.
type Preview struct {
	RawNumber         string           `json:"raw_number"`
	DialString        string           `json:"dial_string"`
	Branch            numbering.Branch `json:"branch"`
	DestinationRegion string           `json:"destination_region,omitempty"`
	SwitchID          string           `json:"switch_id"`
}
