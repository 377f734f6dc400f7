package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	db := new(mockDB)
	db.On("QueryRow", mock.Anything, sqlWith("WITH site_count"), mock.Anything).
		Return(&mockRow{scanFunc: func(dest ...any) error {
			*(dest[0].(*int)) = 12
			*(dest[1].(*int)) = 7
			*(dest[2].(*int)) = 3
			*(dest[3].(*int)) = 2
			*(dest[4].(*int)) = 1
			return nil
		}})
	db.On("Query", mock.Anything, sqlWith("GROUP BY status"), mock.Anything).
		Return(newMockRows(func(dest ...any) error {
			*(dest[0].(*string)) = "active"
			*(dest[1].(*int)) = 12
			return nil
		}), nil)
	db.On("Query", mock.Anything, sqlWith("LEFT JOIN sites"), mock.Anything).
		Return(newMockRows(func(dest ...any) error {
			*(dest[0].(*string)) = "srv-1"
			*(dest[1].(*string)) = "web-1"
			*(dest[2].(*int)) = 12
			return nil
		}), nil)

	svc := NewDashboardService(db)
	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.Sites)
	assert.Equal(t, 7, stats.SitesWithDNS)
	assert.Equal(t, 3, stats.Servers)
	assert.Equal(t, 2, stats.ServersConnected)
	assert.Equal(t, 1, stats.ServersMaintenance)
	require.Len(t, stats.SitesByStatus, 1)
	assert.Equal(t, "active", stats.SitesByStatus[0].Status)
	require.Len(t, stats.SitesPerServer, 1)
	assert.Equal(t, "web-1", stats.SitesPerServer[0].ServerName)
}
