package core

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voss/wpfleet/internal/api/request"
	"github.com/voss/wpfleet/internal/model"
)

func TestServerGetByID(t *testing.T) {
	db := new(mockDB)
	db.On("QueryRow", mock.Anything, sqlWith("FROM servers WHERE id"), mock.Anything).
		Return(serverRow(testServer("srv-1", "remote-1", "203.0.113.10")))

	svc := NewServerService(db)
	srv, err := svc.GetByID(context.Background(), "srv-1")
	require.NoError(t, err)
	assert.Equal(t, "remote-1", srv.RemoteID)
	assert.Equal(t, model.ServerConnected, srv.Status)
}

func TestServerGetByIDNotFound(t *testing.T) {
	db := new(mockDB)
	db.On("QueryRow", mock.Anything, sqlWith("FROM servers WHERE id"), mock.Anything).
		Return(errRow(pgx.ErrNoRows))

	svc := NewServerService(db)
	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrServerNotFound)
}

func TestServerListConnected(t *testing.T) {
	db := new(mockDB)
	db.On("Query", mock.Anything, sqlWith("WHERE status = $1 ORDER BY name"), mock.Anything).
		Return(serverRows(
			testServer("srv-1", "remote-1", ""),
			testServer("srv-2", "remote-2", ""),
		), nil)

	svc := NewServerService(db)
	servers, err := svc.ListConnected(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, "srv-1", servers[0].ID)
}

func TestServerListPagination(t *testing.T) {
	db := new(mockDB)
	// Limit+1 rows returned means there is a next page.
	db.On("Query", mock.Anything, sqlWith("FROM servers"), mock.Anything).
		Return(serverRows(
			testServer("srv-1", "remote-1", ""),
			testServer("srv-2", "remote-2", ""),
			testServer("srv-3", "remote-3", ""),
		), nil)

	svc := NewServerService(db)
	servers, hasMore, err := svc.List(context.Background(), request.ListParams{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, servers, 2)
	assert.True(t, hasMore)
}

func TestServerMarkMaintenance(t *testing.T) {
	db := new(mockDB)
	db.On("Exec", mock.Anything, sqlWith("UPDATE servers SET status"),
		mock.MatchedBy(func(args []any) bool {
			return args[0] == model.ServerMaintenance && args[1] == "srv-1"
		})).
		Return(pgconn.CommandTag{}, nil)

	svc := NewServerService(db)
	require.NoError(t, svc.MarkMaintenance(context.Background(), "srv-1"))
	db.AssertExpectations(t)
}

func TestServerMarkMaintenanceError(t *testing.T) {
	db := new(mockDB)
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.CommandTag{}, errors.New("connection lost"))

	svc := NewServerService(db)
	err := svc.MarkMaintenance(context.Background(), "srv-1")
	assert.ErrorContains(t, err, "mark server srv-1 maintenance")
}
