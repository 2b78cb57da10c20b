package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrTransient         = errors.New("transient backend failure")
	ErrMalformed         = errors.New("malformed backend response")
	ErrStaleSnapshot     = errors.New("snapshot superseded by a newer request")
	ErrParse             = errors.New("cannot parse push event")
	ErrConnectionDropped = errors.New("push connection dropped")
	ErrNotConfigured     = errors.New("not configured")
	ErrInvalidOrderID    = errors.New("invalid order id")
	ErrInvalidStatus     = errors.New("invalid order status")
)

// FetchErrorKind is kind of backend request failure
type FetchErrorKind int

const (
	KindUnauthorized FetchErrorKind = iota + 1
	KindTransient
	KindMalformed
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindTransient:
		return "transient"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

func (k FetchErrorKind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindTransient:
		return ErrTransient
	default:
		return ErrMalformed
	}
}

// FetchError is error of backend request
type FetchError struct {
	Kind FetchErrorKind
	// StatusCode is HTTP status, zero when no response was received
	StatusCode int
	Err        error
}

// NewFetchError creates new FetchError instance
func NewFetchError(kind FetchErrorKind, statusCode int, err error) *FetchError {
	return &FetchError{Kind: kind, StatusCode: statusCode, Err: err}
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is matches FetchError against kind sentinels
func (e *FetchError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns kind of fetch error, zero if err is not a fetch error
func KindOf(err error) FetchErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrTransient):
		return KindTransient
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	}
	return 0
}
