package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/mail"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/voss/wpfleet/internal/hostapi"
	"github.com/voss/wpfleet/internal/metrics"
	"github.com/voss/wpfleet/internal/model"
	"github.com/voss/wpfleet/internal/platform"
)

var subdomainRegex = regexp.MustCompile(`^[a-z0-9-]+$`)

// ProvisionService runs the site provisioning and deprovisioning
// workflows. Steps are strictly sequential: each later step depends on
// identifiers produced by an earlier one.
type ProvisionService struct {
	servers  *ServerService
	sites    *SiteService
	settings *SettingService
	hosting  HostingClient
	dns      DNSClient
	logger   zerolog.Logger

	// shuffle randomizes candidate order so load does not concentrate on
	// one server. Tests replace it to make failover order deterministic.
	shuffle func(n int, swap func(i, j int))
}

func NewProvisionService(servers *ServerService, sites *SiteService, settings *SettingService,
	hosting HostingClient, dns DNSClient, logger zerolog.Logger) *ProvisionService {
	return &ProvisionService{
		servers:  servers,
		sites:    sites,
		settings: settings,
		hosting:  hosting,
		dns:      dns,
		logger:   logger,
		shuffle:  rand.Shuffle,
	}
}

// ProvisionParams are the operator inputs for a new site.
type ProvisionParams struct {
	Subdomain   string
	Reminder    bool
	NotifyEmail string
}

// Provision creates a WordPress site for params.Subdomain: it picks a
// connected server (failing over across the pool), installs WordPress
// through the hosting API, attempts SSL, persists the site, then makes
// the best-effort follow-up calls (DNS record, database credential
// backfill). On any classified failure no site row is left behind.
func (s *ProvisionService) Provision(ctx context.Context, params ProvisionParams) (*model.Site, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	baseDomain, err := s.settings.BaseDomain(ctx)
	if err != nil {
		return nil, err
	}
	domain := params.Subdomain + "." + baseDomain

	taken, err := s.sites.ExistsByDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	if taken {
		metrics.ProvisionsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
		return nil, ErrSubdomainTaken
	}

	if !s.hosting.Configured() {
		return nil, ErrHostingNotConfigured
	}

	candidates, err := s.servers.ListConnected(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		metrics.ProvisionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, ErrNoServersAvailable
	}
	s.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	attempt, err := s.createOnAnyServer(ctx, domain, candidates)
	if err != nil {
		if errors.Is(err, ErrSubdomainTaken) {
			metrics.ProvisionsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
		} else {
			metrics.ProvisionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		}
		return nil, err
	}

	ssl := s.installSSL(ctx, attempt.server.RemoteID, attempt.result.App.ID)

	now := time.Now()
	site := &model.Site{
		ID:          platform.NewID(),
		Token:       platform.NewSiteToken(),
		Name:        params.Subdomain,
		Domain:      domain,
		ServerID:    attempt.server.ID,
		AppID:       attempt.result.App.ID,
		SysUser:     attempt.result.Credentials.SysUser,
		SysPassword: attempt.result.Credentials.SysPassword,
		WPUser:      attempt.result.Credentials.WPUser,
		WPPassword:  attempt.result.Credentials.WPPassword,
		Status:      model.StatusActive,
		Reminder:    params.Reminder,
		NotifyEmail: params.NotifyEmail,
		Audit: model.SiteAudit{
			SchemaVersion: model.SiteAuditVersion,
			InstalledAt:   now,
			SSL:           ssl,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	site.DatabaseName = attempt.result.Credentials.DatabaseName
	if attempt.dbInfo != nil {
		site.DatabaseID = attempt.dbInfo.DatabaseID
		site.DatabaseHost = attempt.dbInfo.DatabaseHost
		if attempt.dbInfo.DatabaseName != "" {
			site.DatabaseName = attempt.dbInfo.DatabaseName
		}
	}

	if err := s.sites.Create(ctx, site); err != nil {
		if errors.Is(err, ErrSubdomainTaken) {
			// A concurrent request won the insert race.
			metrics.ProvisionsTotal.WithLabelValues(metrics.OutcomeConflict).Inc()
			return nil, err
		}
		metrics.ProvisionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	s.createDNSRecord(ctx, site, attempt.server)
	s.backfillDatabaseUsers(ctx, site, attempt.server)

	metrics.ProvisionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	s.logger.Info().
		Str("site", site.Token).
		Str("domain", site.Domain).
		Str("server_id", site.ServerID).
		Bool("ssl", ssl.Installed).
		Bool("dns", site.HasDNSRecord).
		Msg("site provisioned")
	return site, nil
}

func validateParams(params ProvisionParams) error {
	if params.Subdomain == "" {
		return &ValidationError{Field: "subdomain", Message: "is required"}
	}
	if !subdomainRegex.MatchString(params.Subdomain) {
		return &ValidationError{Field: "subdomain", Message: "may only contain lowercase letters, digits, and hyphens"}
	}
	if params.Reminder && params.NotifyEmail == "" {
		return &ValidationError{Field: "notify_email", Message: "is required when reminder is enabled"}
	}
	if params.NotifyEmail != "" {
		if _, err := mail.ParseAddress(params.NotifyEmail); err != nil {
			return &ValidationError{Field: "notify_email", Message: "is not a valid email address"}
		}
	}
	return nil
}

// serverAttempt is the outcome of a successful creation attempt: the
// winning server, the hosting API result, and the database info fetched
// immediately after (nil when that follow-up call failed).
type serverAttempt struct {
	server model.Server
	result *hostapi.CreateSiteResult
	dbInfo *hostapi.DatabaseInfo
}

// createOnAnyServer walks the shuffled candidate list until one server
// accepts the installation. Per attempt the outcome is tri-state:
// success stops the loop, a duplicate-domain rejection aborts it (the
// conflict follows the domain, not the server), and any other failure
// demotes the server to maintenance and moves on.
func (s *ProvisionService) createOnAnyServer(ctx context.Context, domain string, candidates []model.Server) (*serverAttempt, error) {
	var lastErr error
	for _, server := range candidates {
		result, err := s.hosting.CreateSite(ctx, server.RemoteID, domain)
		if err == nil {
			attempt := &serverAttempt{server: server, result: result}
			if result.App.ID != "" {
				attempt.dbInfo = s.fetchDatabaseInfo(ctx, server.RemoteID, result.App.ID)
			}
			return attempt, nil
		}

		if hostapi.IsDuplicateDomain(err) {
			s.logger.Info().
				Str("domain", domain).
				Str("server_id", server.ID).
				Msg("domain already exists on hosting platform")
			return nil, ErrSubdomainTaken
		}

		s.logger.Warn().
			Err(err).
			Str("domain", domain).
			Str("server_id", server.ID).
			Msg("site creation failed, trying next server")
		metrics.ServerFailovers.Inc()
		if merr := s.servers.MarkMaintenance(ctx, server.ID); merr != nil {
			s.logger.Error().Err(merr).Str("server_id", server.ID).Msg("failed to mark server maintenance")
		}
		lastErr = err
	}
	return nil, &AllServersFailedError{Attempts: len(candidates), LastErr: lastErr}
}

// fetchDatabaseInfo is a best-effort follow-up to a successful install.
// A failure is logged and provisioning continues without the info.
func (s *ProvisionService) fetchDatabaseInfo(ctx context.Context, serverRemoteID, appID string) *hostapi.DatabaseInfo {
	info, err := s.hosting.GetDatabaseInfo(ctx, serverRemoteID, appID)
	if err != nil {
		s.logger.Warn().Err(err).Str("app_id", appID).Msg("failed to fetch database info")
		return nil
	}
	return info
}

// installSSL tries the custom certificate mode first, then falls back to
// automatic issuance. Both failing is non-fatal: the site is created
// without SSL and the outcome is recorded for operator visibility.
func (s *ProvisionService) installSSL(ctx context.Context, serverRemoteID, appID string) model.SSLOutcome {
	if appID == "" {
		return model.SSLOutcome{}
	}

	err := s.hosting.InstallSSL(ctx, serverRemoteID, appID, true, true)
	if err == nil {
		return model.SSLOutcome{Installed: true, Type: model.SSLTypeCustom}
	}
	s.logger.Warn().Err(err).Str("app_id", appID).Msg("custom ssl install failed, trying automatic")

	if err := s.hosting.InstallSSL(ctx, serverRemoteID, appID, false, true); err != nil {
		s.logger.Warn().Err(err).Str("app_id", appID).Msg("automatic ssl install failed, site continues without ssl")
		return model.SSLOutcome{}
	}
	return model.SSLOutcome{Installed: true, Type: model.SSLTypeAutomatic}
}

// createDNSRecord creates the proxied A record for the site after the
// row exists. Skipped when the DNS client is unconfigured or the server
// has no known address; failures leave the site without a record.
func (s *ProvisionService) createDNSRecord(ctx context.Context, site *model.Site, server model.Server) {
	if !s.dns.Configured() || server.IPAddress == "" {
		return
	}

	recordID, err := s.dns.CreateARecord(ctx, site.Name, server.IPAddress, true)
	if err != nil {
		s.logger.Warn().Err(err).Str("site", site.Token).Msg("dns record creation failed")
		return
	}

	site.DNSRecordID = recordID
	site.HasDNSRecord = true
	site.Audit.DNS = &model.DNSRecordAudit{
		RecordID:  recordID,
		Type:      "A",
		Name:      site.Name,
		IPAddress: server.IPAddress,
		CreatedAt: time.Now(),
	}
	if err := s.sites.AttachDNSRecord(ctx, site); err != nil {
		s.logger.Error().Err(err).Str("site", site.Token).Msg("failed to store dns record")
	}
}

// backfillDatabaseUsers fetches the database user created for the site
// and updates only the fields that came back non-empty, never replacing
// an existing value with an empty one. Failures are logged and
// swallowed; the overall provisioning still succeeds.
func (s *ProvisionService) backfillDatabaseUsers(ctx context.Context, site *model.Site, server model.Server) {
	if site.DatabaseID == "" || server.RemoteID == "" {
		return
	}

	users, err := s.hosting.GetDatabaseUsers(ctx, server.RemoteID, site.DatabaseID)
	if err != nil {
		s.logger.Warn().Err(err).Str("site", site.Token).Msg("database user backfill failed")
		return
	}

	changed := false
	if users.Username != "" {
		site.DatabaseUser = users.Username
		changed = true
	}
	if users.Password != "" {
		site.DatabasePassword = users.Password
		changed = true
	}
	if !changed {
		return
	}

	site.Audit.Database = &model.DatabaseAudit{
		Username:     site.DatabaseUser,
		BackfilledAt: time.Now(),
	}
	if err := s.sites.UpdateDatabaseCredentials(ctx, site); err != nil {
		s.logger.Error().Err(err).Str("site", site.Token).Msg("failed to store database credentials")
	}
}

// DeprovisionResult reports a completed deletion. Warnings lists the
// remote cleanup steps that failed; the local record is gone either way.
type DeprovisionResult struct {
	Domain   string
	Warnings []string
}

// Deprovision tears down a site's remote resources best-effort, then
// deletes the local record. Each remote step is independently guarded;
// failures become warnings and never block the local deletion.
func (s *ProvisionService) Deprovision(ctx context.Context, token string) (*DeprovisionResult, error) {
	site, err := s.sites.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	result := &DeprovisionResult{Domain: site.Domain}

	var server *model.Server
	if site.ServerID != "" && (site.AppID != "" || site.DatabaseID != "") {
		server, err = s.servers.GetByID(ctx, site.ServerID)
		if err != nil {
			s.logger.Warn().Err(err).Str("site", site.Token).Msg("server lookup failed during deprovision")
			result.Warnings = append(result.Warnings, fmt.Sprintf("server lookup failed: %v", err))
		}
	}

	if site.AppID != "" && server != nil {
		if err := s.hosting.DeleteApp(ctx, server.RemoteID, site.AppID); err != nil {
			s.logger.Warn().Err(err).Str("site", site.Token).Msg("remote app deletion failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("application %s could not be deleted: %v", site.AppID, err))
		}
	}

	if site.DatabaseID != "" && server != nil {
		if err := s.hosting.DeleteDatabase(ctx, server.RemoteID, site.DatabaseID, site.AppID); err != nil {
			s.logger.Warn().Err(err).Str("site", site.Token).Msg("remote database deletion failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("database %s could not be deleted: %v", site.DatabaseID, err))
		}
	}

	if site.HasDNSRecord && site.DNSRecordID != "" {
		if err := s.dns.DeleteRecord(ctx, site.DNSRecordID); err != nil {
			s.logger.Warn().Err(err).Str("site", site.Token).Msg("dns record deletion failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("dns record %s could not be deleted: %v", site.DNSRecordID, err))
		}
	}

	if err := s.sites.Delete(ctx, site.ID); err != nil {
		metrics.DeprovisionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if len(result.Warnings) > 0 {
		outcome = metrics.OutcomePartial
	}
	metrics.DeprovisionsTotal.WithLabelValues(outcome).Inc()
	s.logger.Info().
		Str("site", site.Token).
		Str("domain", site.Domain).
		Int("warnings", len(result.Warnings)).
		Msg("site deprovisioned")
	return result, nil
}
