package core

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/voss/wpfleet/internal/hostapi"
)

// DB is the subset of pgxpool.Pool the services need. Narrowing the
// dependency keeps the services testable with a mock.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HostingClient is the remote hosting automation API as the provisioning
// workflow sees it. Satisfied by *hostapi.Client.
type HostingClient interface {
	Configured() bool
	CreateSite(ctx context.Context, serverID, domain string) (*hostapi.CreateSiteResult, error)
	GetDatabaseInfo(ctx context.Context, serverID, appID string) (*hostapi.DatabaseInfo, error)
	GetDatabaseUsers(ctx context.Context, serverID, databaseID string) (*hostapi.DatabaseUsers, error)
	InstallSSL(ctx context.Context, serverID, appID string, custom, forceHTTPS bool) error
	DeleteApp(ctx context.Context, serverID, appID string) error
	DeleteDatabase(ctx context.Context, serverID, databaseID, appID string) error
}

// DNSClient is the CDN/DNS provider as the provisioning workflow sees
// it. Satisfied by *cloudflare.Client.
type DNSClient interface {
	Configured() bool
	CreateARecord(ctx context.Context, name, ipAddress string, proxied bool) (string, error)
	DeleteRecord(ctx context.Context, recordID string) error
}

type Services struct {
	Server    *ServerService
	Site      *SiteService
	Setting   *SettingService
	APIKey    *APIKeyService
	Dashboard *DashboardService
	Provision *ProvisionService
}

func NewServices(db DB, hosting HostingClient, dns DNSClient, logger zerolog.Logger) *Services {
	servers := NewServerService(db)
	sites := NewSiteService(db)
	settings := NewSettingService(db)

	return &Services{
		Server:    servers,
		Site:      sites,
		Setting:   settings,
		APIKey:    NewAPIKeyService(db),
		Dashboard: NewDashboardService(db),
		Provision: NewProvisionService(servers, sites, settings, hosting, dns, logger),
	}
}
