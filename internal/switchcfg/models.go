// Package switchcfg stores and validates each tenant's switch servers: how to
// reach the management interface and which prefix rules apply to numbers
// dialed through it.
package switchcfg

import (
	"time"

	"click2dial/internal/numbering"
	"click2dial/internal/telephony"
)

// Defaults for a new switch server.
const (
	DefaultPort                 = 5038
	DefaultOutPrefix            = "0"
	DefaultNationalPrefix       = "0"
	DefaultInternationalPrefix  = "00"
	DefaultExtensionPriority    = 1
	DefaultAnswerTimeoutSeconds = 5
)

// Settings is one switch server of a tenant.
//
// Every string written to the switch must be a single line; a CR or LF would
// let a value inject extra protocol headers.
type Settings struct {
	TenantID  string `json:"tenant_id" validate:"required"`
	ID        string `json:"id" validate:"required,max=64"`
	Name      string `json:"name" validate:"max=128"`
	IsDefault bool   `json:"is_default"`

	Host   string `json:"host" validate:"required,singleline"`
	Port   int    `json:"port" validate:"min=1,max=65535"`
	Login  string `json:"login" validate:"required,singleline"`
	Secret string `json:"secret,omitempty" validate:"required,singleline"`

	DialContext          string `json:"dial_context" validate:"required,singleline"`
	ExtensionPriority    int    `json:"extension_priority" validate:"min=1"`
	AnswerTimeoutSeconds int    `json:"answer_timeout_seconds" validate:"min=1,max=120"`
	AlertHeader          string `json:"alert_header,omitempty" validate:"singleline"`

	CountryPrefix         string `json:"country_prefix" validate:"required,digits"`
	NationalPrefix        string `json:"national_prefix" validate:"omitempty,digits"`
	InternationalPrefix   string `json:"international_prefix" validate:"required,digits"`
	OutPrefix             string `json:"out_prefix" validate:"omitempty,digits"`
	NationalFormatAllowed bool   `json:"national_format_allowed"`

	UpdatedAt time.Time `json:"updated_at"`
}

// New returns settings for a new switch server, pre-filled with defaults.
func New(tenantID, id string) Settings {
	return Settings{
		TenantID:              tenantID,
		ID:                    id,
		Port:                  DefaultPort,
		ExtensionPriority:     DefaultExtensionPriority,
		AnswerTimeoutSeconds:  DefaultAnswerTimeoutSeconds,
		OutPrefix:             DefaultOutPrefix,
		NationalPrefix:        DefaultNationalPrefix,
		InternationalPrefix:   DefaultInternationalPrefix,
		NationalFormatAllowed: true,
	}
}

func (s Settings) PrefixRules() numbering.PrefixRules {
	return numbering.PrefixRules{
		CountryPrefix:         s.CountryPrefix,
		NationalPrefix:        s.NationalPrefix,
		InternationalPrefix:   s.InternationalPrefix,
		OutPrefix:             s.OutPrefix,
		NationalFormatAllowed: s.NationalFormatAllowed,
	}
}

func (s Settings) Endpoint() telephony.SwitchEndpoint {
	return telephony.SwitchEndpoint{
		Host:                 s.Host,
		Port:                 s.Port,
		Login:                s.Login,
		Secret:               s.Secret,
		DialContext:          s.DialContext,
		ExtensionPriority:    s.ExtensionPriority,
		AnswerTimeoutSeconds: s.AnswerTimeoutSeconds,
		AlertHeader:          s.AlertHeader,
	}
}

// Redacted returns a copy safe to show to API clients.
func (s Settings) Redacted() Settings {
	s.Secret = ""
	return s
}
