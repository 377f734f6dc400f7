package hostapi

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a failure reported by the hosting API, either as a non-2xx
// status or as a success=false envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("hosting api: %s (code %s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("hosting api: %s (status %d)", e.Message, e.StatusCode)
}

// IsDuplicateDomain reports whether err is a hosting API failure caused
// by the domain already existing on the platform. Such a failure is
// terminal: retrying on another server cannot resolve a domain conflict.
func IsDuplicateDomain(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if strings.EqualFold(apiErr.Code, "duplicate domain") || strings.EqualFold(apiErr.Code, "duplicate_domain") {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "duplicate domain") || strings.Contains(msg, "domain name found")
}
