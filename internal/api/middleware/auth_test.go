package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type authMockDB struct {
	mock.Mock
}

func (m *authMockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *authMockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	return nil, args.Error(1)
}

func (m *authMockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

type authMockRow struct {
	id  string
	err error
}

func (r *authMockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.id
	return nil
}

func nextHandler(called *bool, gotKeyID *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, ok := r.Context().Value(APIKeyIDKey).(string); ok {
			*gotKeyID = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMissingKey(t *testing.T) {
	db := new(authMockDB)
	var called bool
	var keyID string

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/sites", nil)
	Auth(db)(nextHandler(&called, &keyID)).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthInvalidKey(t *testing.T) {
	db := new(authMockDB)
	db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
		Return(&authMockRow{err: pgx.ErrNoRows})

	var called bool
	var keyID string

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/sites", nil)
	r.Header.Set("X-API-Key", "wpf_bogus")
	Auth(db)(nextHandler(&called, &keyID)).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthValidKey(t *testing.T) {
	rawKey := "wpf_valid_key"
	hash := sha256.Sum256([]byte(rawKey))
	expectedHash := hex.EncodeToString(hash[:])

	db := new(authMockDB)
	db.On("QueryRow", mock.Anything, mock.Anything,
		mock.MatchedBy(func(args []any) bool {
			return len(args) == 1 && args[0] == expectedHash
		})).
		Return(&authMockRow{id: "key-1"})

	var called bool
	var keyID string

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/sites", nil)
	r.Header.Set("X-API-Key", rawKey)
	Auth(db)(nextHandler(&called, &keyID)).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, "key-1", keyID)
}
