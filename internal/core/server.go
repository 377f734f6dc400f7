package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/voss/wpfleet/internal/api/request"
	"github.com/voss/wpfleet/internal/model"
)

// ServerService manages the pool of remote hosting servers.
type ServerService struct {
	db DB
}

func NewServerService(db DB) *ServerService {
	return &ServerService{db: db}
}

func (s *ServerService) Create(ctx context.Context, server *model.Server) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO servers (id, remote_id, name, ip_address, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		server.ID, server.RemoteID, server.Name, server.IPAddress, server.Status,
		server.CreatedAt, server.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert server: %w", err)
	}
	return nil
}

func (s *ServerService) GetByID(ctx context.Context, id string) (*model.Server, error) {
	var srv model.Server
	err := s.db.QueryRow(ctx,
		`SELECT id, remote_id, name, ip_address, status, created_at, updated_at
		 FROM servers WHERE id = $1`, id,
	).Scan(&srv.ID, &srv.RemoteID, &srv.Name, &srv.IPAddress, &srv.Status,
		&srv.CreatedAt, &srv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrServerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get server %s: %w", id, err)
	}
	return &srv, nil
}

func (s *ServerService) List(ctx context.Context, params request.ListParams) ([]model.Server, bool, error) {
	query := `SELECT id, remote_id, name, ip_address, status, created_at, updated_at FROM servers WHERE 1=1`
	args := []any{}
	argIdx := 1

	if params.Search != "" {
		query += fmt.Sprintf(` AND name ILIKE $%d`, argIdx)
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	if params.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, argIdx)
		args = append(args, params.Status)
		argIdx++
	}
	if params.Cursor != "" {
		query += fmt.Sprintf(` AND id > $%d`, argIdx)
		args = append(args, params.Cursor)
		argIdx++
	}

	sortCol := "created_at"
	switch params.Sort {
	case "name":
		sortCol = "name"
	case "status":
		sortCol = "status"
	case "created_at":
		sortCol = "created_at"
	}
	order := "DESC"
	if params.Order == "asc" {
		order = "ASC"
	}
	query += fmt.Sprintf(` ORDER BY %s %s`, sortCol, order)
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, params.Limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list servers: %w", err)
	}
	defer rows.Close()

	var servers []model.Server
	for rows.Next() {
		var srv model.Server
		if err := rows.Scan(&srv.ID, &srv.RemoteID, &srv.Name, &srv.IPAddress, &srv.Status,
			&srv.CreatedAt, &srv.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan server: %w", err)
		}
		servers = append(servers, srv)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate servers: %w", err)
	}

	hasMore := len(servers) > params.Limit
	if hasMore {
		servers = servers[:params.Limit]
	}
	return servers, hasMore, nil
}

// ListConnected returns the servers eligible for new site provisioning.
func (s *ServerService) ListConnected(ctx context.Context) ([]model.Server, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, remote_id, name, ip_address, status, created_at, updated_at
		 FROM servers WHERE status = $1 ORDER BY name`, model.ServerConnected,
	)
	if err != nil {
		return nil, fmt.Errorf("list connected servers: %w", err)
	}
	defer rows.Close()

	var servers []model.Server
	for rows.Next() {
		var srv model.Server
		if err := rows.Scan(&srv.ID, &srv.RemoteID, &srv.Name, &srv.IPAddress, &srv.Status,
			&srv.CreatedAt, &srv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan server: %w", err)
		}
		servers = append(servers, srv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate servers: %w", err)
	}
	return servers, nil
}

func (s *ServerService) Update(ctx context.Context, server *model.Server) error {
	_, err := s.db.Exec(ctx,
		`UPDATE servers SET remote_id = $1, name = $2, ip_address = $3, status = $4, updated_at = now()
		 WHERE id = $5`,
		server.RemoteID, server.Name, server.IPAddress, server.Status, server.ID,
	)
	if err != nil {
		return fmt.Errorf("update server %s: %w", server.ID, err)
	}
	return nil
}

// MarkMaintenance demotes a server after a hard failure during site
// creation on it. The write is a single statement; concurrent
// provisioning requests may race here, which is acceptable for a
// best-effort load-shedding signal.
func (s *ServerService) MarkMaintenance(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE servers SET status = $1, updated_at = now() WHERE id = $2",
		model.ServerMaintenance, id,
	)
	if err != nil {
		return fmt.Errorf("mark server %s maintenance: %w", id, err)
	}
	return nil
}

func (s *ServerService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM servers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete server %s: %w", id, err)
	}
	return nil
}
