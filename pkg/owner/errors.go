package owner

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthExpired indicates the stored access token was rejected (HTTP 401)
	// or is past the staleness threshold. The caller should surface the
	// re-login affordance rather than treat this as a crash.
	ErrAuthExpired = errors.New("access token expired or rejected")

	// ErrNoToken indicates a password-grant exchange completed without
	// producing an access token, typically because the credentials were
	// rejected. It is a recoverable condition, distinct from a transport
	// failure.
	ErrNoToken = errors.New("no access token")
)

// NetworkError wraps a transport-level failure: DNS resolution, TLS handshake,
// connection refused or reset. It never represents an HTTP status code.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx HTTP response from the vendor API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %s: %s", http.StatusText(e.Status), e.Body)
}

// Temporary reports whether the status suggests a transient server-side
// condition rather than a malformed or unauthorized request.
func (e *APIError) Temporary() bool {
	return e.Status == http.StatusServiceUnavailable ||
		e.Status == http.StatusGatewayTimeout ||
		e.Status == http.StatusRequestTimeout
}

// PartialDataError marks a single telemetry field as unavailable for an
// otherwise reachable vehicle, usually because the vehicle fell asleep between
// the registry call and the data request. Aggregators absorb it per field; it
// must never abort a whole render.
type PartialDataError struct {
	Field string
	Err   error
}

func (e *PartialDataError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s unavailable", e.Field)
	}
	return fmt.Sprintf("%s unavailable: %s", e.Field, e.Err)
}

func (e *PartialDataError) Unwrap() error {
	return e.Err
}
