package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/voss/wpfleet/internal/core"
)

func newSiteHandler() *Site {
	return NewSite(nil, nil)
}

// --- Create ---

func TestSiteCreate_InvalidJSON(t *testing.T) {
	h := newSiteHandler()
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodPost, "/sites", "{bad json")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestSiteCreate_MissingSubdomain(t *testing.T) {
	h := newSiteHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/sites", map[string]any{})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestSiteCreate_InvalidSubdomain(t *testing.T) {
	tests := []struct {
		name      string
		subdomain string
	}{
		{"uppercase", "Blog"},
		{"spaces", "my blog"},
		{"dots", "a.b"},
		{"special chars", "blog!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newSiteHandler()
			rec := httptest.NewRecorder()
			r := newRequest(http.MethodPost, "/sites", map[string]any{
				"subdomain": tt.subdomain,
			})

			h.Create(rec, r)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSiteCreate_InvalidEmail(t *testing.T) {
	h := newSiteHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/sites", map[string]any{
		"subdomain":    "blog",
		"notify_email": "not-an-email",
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Error mapping ---

func TestWriteProvisionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &core.ValidationError{Field: "subdomain", Message: "is required"}, http.StatusBadRequest},
		{"subdomain taken", core.ErrSubdomainTaken, http.StatusConflict},
		{"hosting not configured", core.ErrHostingNotConfigured, http.StatusServiceUnavailable},
		{"no servers", core.ErrNoServersAvailable, http.StatusServiceUnavailable},
		{"base domain missing", core.ErrBaseDomainNotSet, http.StatusServiceUnavailable},
		{"all servers failed", &core.AllServersFailedError{Attempts: 3, LastErr: errors.New("boom")}, http.StatusBadGateway},
		{"unclassified", errors.New("database on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeProvisionError(rec, tt.err)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

// --- Get ---

func TestSiteGet_MissingToken(t *testing.T) {
	h := newSiteHandler()
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodGet, "/sites/", nil), "token", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSiteGet_NotFound(t *testing.T) {
	db := new(handlerMockDB)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
		Return(&handlerMockRow{scanFunc: func(dest ...any) error {
			return pgx.ErrNoRows
		}})

	h := NewSite(core.NewSiteService(db), nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodGet, "/sites/unknown", nil), "token", "unknown")

	h.Get(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "site not found")
}

// --- Delete ---

func TestSiteDelete_MissingToken(t *testing.T) {
	h := newSiteHandler()
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/sites/", nil), "token", "")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
