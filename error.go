package llm

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrConfiguration
	ErrModel
	ErrAuthentication
	ErrAPI
	ErrValidation
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is the kind of a domain error. Every error returned by the query core
// wraps exactly one Err, so callers can match narrowly with errors.Is or
// broadly with KindOf.
type Err int

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	switch e {
	case ErrSuccess:
		return "success"
	case ErrConfiguration:
		return "configuration error"
	case ErrModel:
		return "model error"
	case ErrAuthentication:
		return "authentication error"
	case ErrAPI:
		return "api error"
	case ErrValidation:
		return "validation error"
	}
	return fmt.Sprintf("error code %d", int(e))
}

func (e Err) With(args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

func (e Err) Withf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// Wrap returns an error of this kind which also chains the underlying cause,
// so that both errors.Is(err, e) and errors.Is(err, cause) hold.
func (e Err) Wrap(cause error, args ...interface{}) error {
	if cause == nil {
		return e.With(args...)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: %w", e, cause)
	}
	return fmt.Errorf("%w: %s: %w", e, fmt.Sprint(args...), cause)
}

func (e Err) Wrapf(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return e.Withf(format, args...)
	}
	return fmt.Errorf("%w: %s: %w", e, fmt.Sprintf(format, args...), cause)
}

// KindOf returns the domain kind of err, and false if err is not a domain error
func KindOf(err error) (Err, bool) {
	var kind Err
	if errors.As(err, &kind) {
		return kind, true
	}
	return ErrSuccess, false
}
