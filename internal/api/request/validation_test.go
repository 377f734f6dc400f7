package request

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireID_Valid(t *testing.T) {
	result, err := RequireID("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", result)
}

func TestRequireID_Empty(t *testing.T) {
	_, err := RequireID("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required ID")
}

func TestDecode_ValidJSON(t *testing.T) {
	body := `{"subdomain":"blog","notify_email":"alice@example.com"}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var payload CreateSite
	err = Decode(r, &payload)
	require.NoError(t, err)
	assert.Equal(t, "blog", payload.Subdomain)
	assert.Equal(t, "alice@example.com", payload.NotifyEmail)
}

func TestDecode_InvalidJSON(t *testing.T) {
	body := `{not valid json}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var payload CreateSite
	err = Decode(r, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDecode_ValidationFails(t *testing.T) {
	// Missing the required "subdomain" field.
	body := `{"notify_email":"alice@example.com"}`
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)

	var payload CreateSite
	err = Decode(r, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation error")
}

func TestSubdomainValidation_Valid(t *testing.T) {
	validSubdomains := []string{"blog", "my-site", "test123", "a", "0-0"}
	for _, sub := range validSubdomains {
		t.Run(sub, func(t *testing.T) {
			assert.True(t, subdomainRegex.MatchString(sub), "expected subdomain %q to be valid", sub)
		})
	}
}

func TestSubdomainValidation_Invalid(t *testing.T) {
	invalidSubdomains := []string{
		"My Site",                // spaces and uppercase
		"Blog",                   // uppercase
		"test@123",               // special character
		"a.b",                    // dots would escape the base domain
		"",                       // empty
		strings.Repeat("a", 64), // too long (max 63 chars)
	}
	for _, sub := range invalidSubdomains {
		t.Run(sub, func(t *testing.T) {
			assert.False(t, subdomainRegex.MatchString(sub), "expected subdomain %q to be invalid", sub)
		})
	}
}
