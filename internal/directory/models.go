// Package directory holds the users who place calls and the parties they
// call. It answers two questions for a dial: which phone is this user's, and
// what is the called party's display name.
package directory

import (
	"errors"

	"click2dial/internal/telephony"
)

var ErrNotFound = errors.New("directory: not found")

// User is a person allowed to click-to-dial.
//
// ChannelType and InternalNumber may be empty; a dial then fails with a
// NoChannelType or NoInternalNumber error instead of reaching the switch.
type User struct {
	TenantID       string `json:"tenant_id" validate:"required"`
	ID             string `json:"id" validate:"required,max=64"`
	ChannelType    string `json:"channel_type" validate:"omitempty,alphanum,max=32"`
	InternalNumber string `json:"internal_number" validate:"omitempty,singleline,extension,max=32"`
	// CallerID overrides the called party's name on the user's phone.
	CallerID string `json:"caller_id,omitempty" validate:"omitempty,singleline,max=80"`
	// SwitchServerID selects a switch; empty means the tenant default.
	SwitchServerID string `json:"switch_server_id,omitempty" validate:"max=64"`
	// Language is a BCP 47 tag used when the request carries none.
	Language string `json:"language,omitempty" validate:"omitempty,bcp47_language_tag"`
}

func (u User) CallerContext() telephony.CallerContext {
	return telephony.CallerContext{
		ChannelType:      u.ChannelType,
		InternalNumber:   u.InternalNumber,
		CallerIDOverride: u.CallerID,
	}
}

// Party is a called party: a contact, account or lead.
type Party struct {
	TenantID    string `json:"tenant_id" validate:"required"`
	ID          string `json:"id" validate:"required,max=64"`
	DisplayName string `json:"display_name" validate:"singleline,max=128"`
}
