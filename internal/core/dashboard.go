package core

import (
	"context"
	"fmt"
)

// DashboardStats holds aggregate counts for the operator dashboard.
type DashboardStats struct {
	Sites              int               `json:"sites"`
	SitesWithDNS       int               `json:"sites_with_dns"`
	SitesByStatus      []StatusCount     `json:"sites_by_status"`
	Servers            int               `json:"servers"`
	ServersConnected   int               `json:"servers_connected"`
	ServersMaintenance int               `json:"servers_maintenance"`
	SitesPerServer     []ServerSiteCount `json:"sites_per_server"`
}

// StatusCount holds a count grouped by status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ServerSiteCount holds site count per server.
type ServerSiteCount struct {
	ServerID   string `json:"server_id"`
	ServerName string `json:"server_name"`
	Count      int    `json:"count"`
}

// DashboardService queries aggregate stats.
type DashboardService struct {
	db DB
}

func NewDashboardService(db DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats returns aggregate counts using a single query with CTEs.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	const countsQuery = `
		WITH site_count AS (
			SELECT count(*) AS c FROM sites
		), dns_count AS (
			SELECT count(*) AS c FROM sites WHERE has_dns_record
		), server_count AS (
			SELECT count(*) AS c FROM servers
		), connected_count AS (
			SELECT count(*) AS c FROM servers WHERE status = 'connected'
		), maintenance_count AS (
			SELECT count(*) AS c FROM servers WHERE status = 'maintenance'
		)
		SELECT site_count.c, dns_count.c, server_count.c, connected_count.c, maintenance_count.c
		FROM site_count, dns_count, server_count, connected_count, maintenance_count`

	stats := &DashboardStats{}
	err := s.db.QueryRow(ctx, countsQuery).Scan(
		&stats.Sites, &stats.SitesWithDNS, &stats.Servers,
		&stats.ServersConnected, &stats.ServersMaintenance,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}

	rows, err := s.db.Query(ctx, "SELECT status, count(*) FROM sites GROUP BY status ORDER BY status")
	if err != nil {
		return nil, fmt.Errorf("sites by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.SitesByStatus = append(stats.SitesByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	perServer, err := s.db.Query(ctx,
		`SELECT servers.id, servers.name, count(sites.id)
		 FROM servers LEFT JOIN sites ON sites.server_id = servers.id
		 GROUP BY servers.id, servers.name ORDER BY servers.name`)
	if err != nil {
		return nil, fmt.Errorf("sites per server: %w", err)
	}
	defer perServer.Close()
	for perServer.Next() {
		var ssc ServerSiteCount
		if err := perServer.Scan(&ssc.ServerID, &ssc.ServerName, &ssc.Count); err != nil {
			return nil, fmt.Errorf("scan server site count: %w", err)
		}
		stats.SitesPerServer = append(stats.SitesPerServer, ssc)
	}
	if err := perServer.Err(); err != nil {
		return nil, fmt.Errorf("iterate server site counts: %w", err)
	}

	return stats, nil
}
