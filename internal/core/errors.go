package core

import (
	"errors"
	"fmt"
)

// Classified provisioning failures. Handlers map these onto HTTP status
// codes; everything else is an internal error.
var (
	// ErrSubdomainTaken covers both the pre-check and the store-level
	// uniqueness violation, and the hosting platform's own duplicate
	// domain rejection. All three surface identically to the operator.
	ErrSubdomainTaken = errors.New("subdomain already taken")

	// ErrHostingNotConfigured means the hosting API client has no
	// credentials. No remote calls are made.
	ErrHostingNotConfigured = errors.New("hosting api is not configured")

	// ErrNoServersAvailable means no server in the pool is connected.
	ErrNoServersAvailable = errors.New("no connected servers available")

	// ErrSiteNotFound is returned for lookups by an unknown site token.
	ErrSiteNotFound = errors.New("site not found")

	// ErrServerNotFound is returned for lookups by an unknown server id.
	ErrServerNotFound = errors.New("server not found")

	// ErrBaseDomainNotSet means the base_domain setting is missing, so
	// no full site domain can be composed.
	ErrBaseDomainNotSet = errors.New("base_domain setting is not configured")
)

// ValidationError reports a malformed or missing input field. It is
// raised before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AllServersFailedError is returned when every eligible server was tried
// and each attempt failed with a retryable error.
type AllServersFailedError struct {
	Attempts int
	LastErr  error
}

func (e *AllServersFailedError) Error() string {
	return fmt.Sprintf("site creation failed on all %d servers, last error: %v", e.Attempts, e.LastErr)
}

func (e *AllServersFailedError) Unwrap() error {
	return e.LastErr
}
