package source

import (
	"errors"
	"fmt"
)

// ErrNoStream is returned by the host when resolution yields nothing playable.
var ErrNoStream = errors.New("no playable stream found")

// AuthError reports a failed or rejected token exchange.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a non-success response or a transport failure talking to a provider.
// Status is zero for transport failures.
type UpstreamError struct {
	URL    string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("upstream %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an empty search or episode result.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.What)
}

// ParseError reports an upstream payload or identifier that could not be decoded.
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Describe renders err for end users, naming its category.
func Describe(err error) string {
	var (
		authErr     *AuthError
		upstreamErr *UpstreamError
		notFoundErr *NotFoundError
		parseErr    *ParseError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return authErr.Error()
	case errors.As(err, &upstreamErr):
		return "provider unavailable: " + upstreamErr.Error()
	case errors.As(err, &notFoundErr):
		return notFoundErr.Error()
	case errors.As(err, &parseErr):
		return "unexpected response: " + parseErr.Error()
	default:
		return err.Error()
	}
}
