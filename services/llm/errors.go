package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// AuthError means the credential is missing or was rejected.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s authentication failed: %v", e.Provider, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// TransportError covers network failures and timeouts.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx answer or other failure reported by the service.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

var ErrMissingAPIKey = errors.New("API key not found")

func IsAuth(err error) bool {
	var target *AuthError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsGenerationError reports whether err came from a Generator.
func IsGenerationError(err error) bool {
	return IsAuth(err) || IsTransport(err) || IsUpstream(err)
}

// Describe renders a generation failure for display in place of an answer.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var auth *AuthError
	if errors.As(err, &auth) && errors.Is(auth.Err, ErrMissingAPIKey) {
		return fmt.Sprintf("%s API key not found. Set it in the environment and try again.", auth.Provider)
	}
	switch {
	case IsAuth(err):
		return "AI error: the API key was rejected: " + err.Error()
	case IsTransport(err):
		return "AI error: could not reach the AI service: " + err.Error()
	default:
		return "AI error: " + err.Error()
	}
}

var authMarkers = []string{
	"401",
	"403",
	"unauthorized",
	"forbidden",
	"invalid api key",
	"incorrect api key",
	"invalid x-api-key",
	"authentication",
}

// classify maps a raw client error onto the generation error taxonomy.
func classify(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TransportError{Provider: provider, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TransportError{Provider: provider, Err: err}
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range authMarkers {
		if strings.Contains(msg, marker) {
			return &AuthError{Provider: provider, Err: err}
		}
	}
	return &UpstreamError{Provider: provider, Err: err}
}
