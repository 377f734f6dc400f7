package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/voss/wpfleet/internal/api/request"
	"github.com/voss/wpfleet/internal/model"
)

const siteColumns = `id, token, name, domain, server_id, app_id, sys_user, wp_user, wp_password,
	 sys_password, database_id, database_name, database_host, database_user, database_password,
	 status, reminder, notify_email, dns_record_id, has_dns_record, audit, created_at, updated_at`

// SiteService persists provisioned sites and their credentials.
type SiteService struct {
	db DB
}

func NewSiteService(db DB) *SiteService {
	return &SiteService{db: db}
}

// Create persists a site in a single write. A unique violation on the
// domain column is reported as ErrSubdomainTaken: two concurrent
// requests for the same subdomain can both pass the pre-check, and the
// index is the actual safety net.
func (s *SiteService) Create(ctx context.Context, site *model.Site) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO sites (id, token, name, domain, server_id, app_id, sys_user, wp_user,
		 wp_password, sys_password, database_id, database_name, database_host, database_user,
		 database_password, status, reminder, notify_email, dns_record_id, has_dns_record,
		 audit, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		 $18, $19, $20, $21, $22, $23)`,
		site.ID, site.Token, site.Name, site.Domain, site.ServerID, site.AppID, site.SysUser,
		site.WPUser, site.WPPassword, site.SysPassword, site.DatabaseID, site.DatabaseName,
		site.DatabaseHost, site.DatabaseUser, site.DatabasePassword, site.Status, site.Reminder,
		site.NotifyEmail, site.DNSRecordID, site.HasDNSRecord, site.Audit,
		site.CreatedAt, site.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrSubdomainTaken
	}
	if err != nil {
		return fmt.Errorf("insert site: %w", err)
	}
	return nil
}

func (s *SiteService) GetByToken(ctx context.Context, token string) (*model.Site, error) {
	var site model.Site
	err := s.db.QueryRow(ctx,
		`SELECT `+siteColumns+` FROM sites WHERE token = $1`, token,
	).Scan(siteFields(&site)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get site by token: %w", err)
	}
	return &site, nil
}

// ExistsByDomain reports whether any site already claims the domain.
func (s *SiteService) ExistsByDomain(ctx context.Context, domain string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM sites WHERE domain = $1)", domain,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check domain %s: %w", domain, err)
	}
	return exists, nil
}

func (s *SiteService) List(ctx context.Context, params request.ListParams) ([]model.Site, bool, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE 1=1`
	args := []any{}
	argIdx := 1

	if params.Search != "" {
		query += fmt.Sprintf(` AND domain ILIKE $%d`, argIdx)
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
	case "domain":
		sortCol = "domain"
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
		return nil, false, fmt.Errorf("list sites: %w", err)
	}
	defer rows.Close()

	var sites []model.Site
	for rows.Next() {
		var site model.Site
		if err := rows.Scan(siteFields(&site)...); err != nil {
			return nil, false, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate sites: %w", err)
	}

	hasMore := len(sites) > params.Limit
	if hasMore {
		sites = sites[:params.Limit]
	}
	return sites, hasMore, nil
}

// AttachDNSRecord stores the DNS record created for a site after the
// site row already exists.
func (s *SiteService) AttachDNSRecord(ctx context.Context, site *model.Site) error {
	_, err := s.db.Exec(ctx,
		`UPDATE sites SET dns_record_id = $1, has_dns_record = $2, audit = $3, updated_at = now()
		 WHERE id = $4`,
		site.DNSRecordID, site.HasDNSRecord, site.Audit, site.ID,
	)
	if err != nil {
		return fmt.Errorf("attach dns record to site %s: %w", site.Token, err)
	}
	return nil
}

// UpdateDatabaseCredentials backfills the database user fields fetched
// after the initial install.
func (s *SiteService) UpdateDatabaseCredentials(ctx context.Context, site *model.Site) error {
	_, err := s.db.Exec(ctx,
		`UPDATE sites SET database_user = $1, database_password = $2, audit = $3, updated_at = now()
		 WHERE id = $4`,
		site.DatabaseUser, site.DatabasePassword, site.Audit, site.ID,
	)
	if err != nil {
		return fmt.Errorf("update database credentials for site %s: %w", site.Token, err)
	}
	return nil
}

func (s *SiteService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM sites WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete site %s: %w", id, err)
	}
	return nil
}

// siteFields returns scan destinations in siteColumns order.
func siteFields(site *model.Site) []any {
	return []any{
		&site.ID, &site.Token, &site.Name, &site.Domain, &site.ServerID, &site.AppID,
		&site.SysUser, &site.WPUser, &site.WPPassword, &site.SysPassword, &site.DatabaseID,
		&site.DatabaseName, &site.DatabaseHost, &site.DatabaseUser, &site.DatabasePassword,
		&site.Status, &site.Reminder, &site.NotifyEmail, &site.DNSRecordID, &site.HasDNSRecord,
		&site.Audit, &site.CreatedAt, &site.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
