package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string

	// Hosting automation API. Empty credentials mean the client reports
	// itself unconfigured and site provisioning is rejected up front.
	HostingAPIURL string
	HostingAPIKey string

	// Cloudflare DNS. Empty credentials mean DNS record creation is
	// skipped; sites are still provisioned without a record.
	CloudflareAPIToken string
	CloudflareZoneID   string

	// RemoteTimeout bounds every call to the hosting and DNS APIs. An
	// unresponsive remote would otherwise stall a provisioning request
	// indefinitely.
	RemoteTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		HTTPListenAddr:     getEnv("HTTP_LISTEN_ADDR", ":8090"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ServiceName:        getEnv("SERVICE_NAME", "wpfleet-api"),
		HostingAPIURL:      getEnv("HOSTING_API_URL", ""),
		HostingAPIKey:      getEnv("HOSTING_API_KEY", ""),
		CloudflareAPIToken: getEnv("CLOUDFLARE_API_TOKEN", ""),
		CloudflareZoneID:   getEnv("CLOUDFLARE_ZONE_ID", ""),
	}

	timeout := getEnv("REMOTE_TIMEOUT", "30s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("parse REMOTE_TIMEOUT %q: %w", timeout, err)
	}
	cfg.RemoteTimeout = d

	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.HTTPListenAddr == "" {
		missing = append(missing, "HTTP_LISTEN_ADDR")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	// Hosting credentials must come as a pair or not at all.
	if (c.HostingAPIURL == "") != (c.HostingAPIKey == "") {
		return fmt.Errorf("HOSTING_API_URL and HOSTING_API_KEY must both be set")
	}
	if (c.CloudflareAPIToken == "") != (c.CloudflareZoneID == "") {
		return fmt.Errorf("CLOUDFLARE_API_TOKEN and CLOUDFLARE_ZONE_ID must both be set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
