package oauth

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates that client credentials are absent. This is a
// normal configuration state, not a failure: handlers translate it into a
// `configured: false` response without ever touching the network.
var ErrNotConfigured = errors.New("oauth credentials not configured")

// AuthError indicates the provider's token endpoint rejected the
// client-credentials request.
type AuthError struct {
	Provider string
	Status   int
	Body     string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s OAuth error: %d - %s", e.Provider, e.Status, e.Body)
}

// UpstreamError indicates the provider's query endpoint returned a
// non-success HTTP status.
type UpstreamError struct {
	Provider string
	Status   int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Provider, e.Status)
}

// NotFoundError indicates the queried entity does not exist upstream.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// TransportError wraps a network-level failure (DNS, connection refused,
// timeout) from either the token or the query endpoint.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s transport error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
