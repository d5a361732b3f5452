package fplclient

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an upstream failure so callers can react differently to
// rate limiting, outages, and connectivity loss.
type Kind string

const (
	KindTimeout            Kind = "timeout"
	KindRateLimited        Kind = "rate_limited"
	KindServerUnavailable  Kind = "server_unavailable"
	KindNotFound           Kind = "not_found"
	KindNetworkUnreachable Kind = "network_unreachable"
	KindUnexpected         Kind = "unexpected"
)

// APIError captures a failed upstream call. Body holds a bounded prefix of
// the response payload for diagnostics on unexpected failures.
type APIError struct {
	Kind       Kind
	Path       string
	StatusCode int
	RetryAfter time.Duration
	Message    string
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("fpl api: %s (status=%d path=%s)", msg, e.StatusCode, e.Path)
	}
	return fmt.Sprintf("fpl api: %s (path=%s)", msg, e.Path)
}

func (e *APIError) Unwrap() error { return e.Err }

// AsAPIError attempts to unwrap an error into an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the classification of err, or KindUnexpected when err did
// not originate from this client.
func KindOf(err error) Kind {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind
	}
	return KindUnexpected
}

// UserMessage maps a failure to the message shown by the presentation layer.
// The taxonomy keeps rate limiting, outages, and connectivity loss
// distinguishable instead of collapsing into one generic failure.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindTimeout:
		return "The FPL API is taking longer than usual to respond. Please wait a moment and try again."
	case KindRateLimited:
		return "Too many requests - please wait a moment before trying again."
	case KindServerUnavailable:
		return "The FPL API is temporarily unavailable. Please try again in a few minutes."
	case KindNotFound:
		return "The requested data could not be found."
	case KindNetworkUnreachable:
		return "Unable to connect to the FPL API. Please check your internet connection."
	default:
		return "Unable to fetch FPL data. Please try again."
	}
}
