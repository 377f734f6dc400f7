package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/sites", nil)
	p := ParseListParams(r, "created_at")
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, "created_at", p.Sort)
	assert.Equal(t, "desc", p.Order)
	assert.Empty(t, p.Search)
	assert.Empty(t, p.Status)
}

func TestParseListParams_AllSet(t *testing.T) {
	r := httptest.NewRequest("GET", "/sites?search=blog&status=active&sort=domain&order=asc&limit=10", nil)
	p := ParseListParams(r, "created_at")
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "blog", p.Search)
	assert.Equal(t, "active", p.Status)
	assert.Equal(t, "domain", p.Sort)
	assert.Equal(t, "asc", p.Order)
}

func TestParseListParams_InvalidOrderFallsBack(t *testing.T) {
	r := httptest.NewRequest("GET", "/sites?order=sideways", nil)
	p := ParseListParams(r, "created_at")
	assert.Equal(t, "desc", p.Order)
}
