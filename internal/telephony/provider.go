package telephony

import (
	"context"
)

// ChannelSIP is the switch technology identifier for SIP endpoints. The
// Alert-Info header is only sent for this channel type.
const ChannelSIP = "SIP"

// Originator places an outbound call on the switch.
//
// Rules:
// - One call, one connection. Implementations must not pool or cache.
// - Endpoint and caller are borrowed for the duration of the call and never mutated.
// - Failures are *dialerr.Error values so the boundary can classify them.
type Originator interface {
	Dial(ctx context.Context, caller CallerContext, endpoint SwitchEndpoint, dialString, callerID string) error
}

// SwitchEndpoint is the management interface of a switch and the dialplan
// parameters used for originate. Bounds (port, priority, answer timeout) are
// validated when the configuration is saved; the client trusts them.
type SwitchEndpoint struct {
	Host   string `json:"host"`
	Port   int    `json:"port"`
	Login  string `json:"login"`
	Secret string `json:"-"`

	// DialContext is the dialplan context the call enters.
	DialContext       string `json:"dial_context"`
	ExtensionPriority int    `json:"extension_priority"`

	// AnswerTimeoutSeconds is how long the switch rings the caller's own phone.
	AnswerTimeoutSeconds int `json:"answer_timeout_seconds"`

	// AlertHeader is an optional Alert-Info value (SIP only), typically used
	// to pick a distinctive or silent ring tone.
	AlertHeader string `json:"alert_header,omitempty"`
}

// CallerContext identifies the user's own phone on the switch.
type CallerContext struct {
	ChannelType    string `json:"channel_type"`
	InternalNumber string `json:"internal_number"`

	// CallerIDOverride replaces the called party's display name as caller id.
	CallerIDOverride string `json:"caller_id_override,omitempty"`
}

// Channel renders the originate channel, e.g. "SIP/201".
func (c CallerContext) Channel() string {
	return c.ChannelType + "/" + c.InternalNumber
}

// CallerIDText picks the caller id shown on the user's phone: the per-user
// override when set, otherwise the called party's display name.
func CallerIDText(caller CallerContext, calledPartyDisplayName string) string {
	if caller.CallerIDOverride != "" {
		return caller.CallerIDOverride
	}
	return calledPartyDisplayName
}
