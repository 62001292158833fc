// Package dialerr holds the classified failures of a click-to-dial attempt.
//
// Every failure surfaces to the invoking user; the HTTP boundary maps a Kind
// to a status code and a localized message.
package dialerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindEmptyNumber                        Kind = "empty_number"
	KindInvalidFormat                      Kind = "invalid_format"
	KindInvalidNationalFormat              Kind = "invalid_national_format"
	KindInvalidInternationalFormatRequired Kind = "invalid_international_format_required"
	KindNoConfiguration                    Kind = "no_configuration"
	KindNoChannelType                      Kind = "no_channel_type"
	KindNoInternalNumber                   Kind = "no_internal_number"
	KindNoPhoneNumber                      Kind = "no_phone_number"
	KindDNSResolutionFailed                Kind = "dns_resolution_failed"
	KindConnectionFailed                   Kind = "connection_failed"
	KindDialInProgress                     Kind = "dial_in_progress"
	KindInternal                           Kind = "internal"
)

// Error is a classified dial failure. Detail is optional human-readable
// context (for example the host that failed to resolve).
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, dialerr.New(k, ""))
// works regardless of detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf returns the Kind carried by err, or KindInternal for unclassified
// errors. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to the status returned by the API.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindEmptyNumber, KindInvalidFormat, KindInvalidNationalFormat,
		KindInvalidInternationalFormatRequired, KindNoPhoneNumber:
		return http.StatusUnprocessableEntity
	case KindNoConfiguration, KindNoChannelType, KindNoInternalNumber:
		return http.StatusPreconditionFailed
	case KindDNSResolutionFailed, KindConnectionFailed:
		return http.StatusBadGateway
	case KindDialInProgress:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// From returns err as an *Error, wrapping unclassified errors as KindInternal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return Wrap(KindInternal, "", err)
}
