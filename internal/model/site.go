package model

import "time"

// Site is a provisioned WordPress installation together with the remote
// identifiers and credentials harvested during provisioning. Token is the
// public lookup key; the row ID never leaves the API.
type Site struct {
	ID               string    `json:"-" db:"id"`
	Token            string    `json:"token" db:"token"`
	Name             string    `json:"name" db:"name"`
	Domain           string    `json:"domain" db:"domain"`
	ServerID         string    `json:"server_id" db:"server_id"`
	AppID            string    `json:"app_id,omitempty" db:"app_id"`
	SysUser          string    `json:"sys_user,omitempty" db:"sys_user"`
	WPUser           string    `json:"wp_user,omitempty" db:"wp_user"`
	WPPassword       string    `json:"-" db:"wp_password"`
	SysPassword      string    `json:"-" db:"sys_password"`
	DatabaseID       string    `json:"database_id,omitempty" db:"database_id"`
	DatabaseName     string    `json:"database_name,omitempty" db:"database_name"`
	DatabaseHost     string    `json:"database_host,omitempty" db:"database_host"`
	DatabaseUser     string    `json:"database_user,omitempty" db:"database_user"`
	DatabasePassword string    `json:"-" db:"database_password"`
	Status           string    `json:"status" db:"status"`
	Reminder         bool      `json:"reminder" db:"reminder"`
	NotifyEmail      string    `json:"notify_email,omitempty" db:"notify_email"`
	DNSRecordID      string    `json:"dns_record_id,omitempty" db:"dns_record_id"`
	HasDNSRecord     bool      `json:"has_dns_record" db:"has_dns_record"`
	Audit            SiteAudit `json:"audit" db:"audit"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// SiteAuditVersion is the current schema version of the SiteAudit payload.
const SiteAuditVersion = 1

// SiteAudit is the installation-time audit trail stored alongside a site.
// It is derived data only; the normalized site columns remain the source
// of truth. The payload is versioned so old rows stay readable if the
// shape changes.
type SiteAudit struct {
	SchemaVersion int             `json:"schema_version"`
	InstalledAt   time.Time       `json:"installed_at"`
	SSL           SSLOutcome      `json:"ssl"`
	DNS           *DNSRecordAudit `json:"dns,omitempty"`
	Database      *DatabaseAudit  `json:"database,omitempty"`
}

// SSL install type constants.
const (
	SSLTypeCustom    = "custom"
	SSLTypeAutomatic = "automatic"
)

// SSLOutcome records whether and how SSL was installed during
// provisioning. Type is empty when Installed is false.
type SSLOutcome struct {
	Installed bool   `json:"installed"`
	Type      string `json:"type,omitempty"`
}

// DNSRecordAudit records the DNS record created for a site.
type DNSRecordAudit struct {
	RecordID  string    `json:"record_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// DatabaseAudit records the database credentials backfilled after the
// initial install.
type DatabaseAudit struct {
	Username     string    `json:"username,omitempty"`
	BackfilledAt time.Time `json:"backfilled_at"`
}
