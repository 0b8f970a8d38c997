/*
provider holds the pieces shared by the provider adapters: the interface
each adapter implements, and the translation of transport and HTTP status
failures into the domain error kinds.
*/
package provider

import (
	"context"
	"errors"
	"net"
	"net/http"

	// Packages
	llm "github.com/mutablelogic/go-llmquery"
	schema "github.com/mutablelogic/go-llmquery/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Querier sends one query to a provider and returns the reply text. Every
// error returned wraps one of the llm error kinds.
type Querier interface {
	// Return the provider name
	Name() string

	// Send the query and return the reply
	Query(context.Context, schema.Request) (string, error)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// MissingCredential returns the error for a provider which cannot be used
// because the named credential is not set
func MissingCredential(name string) error {
	return llm.ErrAuthentication.Withf("%s is not set", name)
}

// StatusCode returns the HTTP status carried by err, if any
func StatusCode(err error) (int, bool) {
	var httpErr httpresponse.Err
	if errors.As(err, &httpErr) {
		return int(httpErr), true
	}
	return 0, false
}

// Translate maps a provider failure to a domain error. Errors which already
// carry a kind are returned unchanged.
func Translate(name string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := llm.KindOf(err); ok {
		return err
	}
	if status, ok := StatusCode(err); ok {
		return FromStatus(name, status, err)
	}
	if IsTimeout(err) {
		return llm.ErrAPI.Wrapf(err, "%s: request timed out", name)
	}
	if errors.Is(err, context.Canceled) {
		return llm.ErrAPI.Wrapf(err, "%s: request cancelled", name)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return llm.ErrAPI.Wrapf(err, "%s: connection error", name)
	}
	return llm.ErrAPI.Wrap(err, name)
}

// FromStatus maps an HTTP status code from a provider to a domain error
func FromStatus(name string, status int, cause error) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return llm.ErrAuthentication.Wrapf(cause, "%s: status %d", name, status)
	case status == http.StatusTooManyRequests:
		return llm.ErrAPI.Wrapf(cause, "%s: rate limited (status %d)", name, status)
	case status == http.StatusBadRequest:
		return llm.ErrAPI.Wrapf(cause, "%s: bad request (status %d)", name, status)
	case status >= http.StatusInternalServerError:
		return llm.ErrAPI.Wrapf(cause, "%s: server error (status %d)", name, status)
	default:
		return llm.ErrAPI.Wrapf(cause, "%s: status %d", name, status)
	}
}

// IsTimeout returns true if err is a deadline or network timeout
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
