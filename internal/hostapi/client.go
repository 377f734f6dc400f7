// Package hostapi is a client for the hosting automation API that
// creates and deletes WordPress installations on remote servers.
package hostapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a hosting API client. An empty baseURL or apiKey
// leaves the client unconfigured; Configured reports this and callers
// must not issue requests through an unconfigured client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Configured reports whether the client has the credentials it needs to
// talk to the hosting API.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// envelope is the response wrapper every hosting API endpoint uses.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

// CreateSite installs a WordPress application for domain on the given
// server and returns the application identifier and generated
// credentials.
func (c *Client) CreateSite(ctx context.Context, serverID, domain string) (*CreateSiteResult, error) {
	payload := map[string]any{
		"server_id":   serverID,
		"domain":      domain,
		"application": "wordpress",
	}

	var result CreateSiteResult
	if err := c.do(ctx, http.MethodPost, "/apps", payload, &result); err != nil {
		return nil, fmt.Errorf("create site %s: %w", domain, err)
	}
	return &result, nil
}

// GetDatabaseInfo fetches the identifier, name, and host of the database
// backing an application.
func (c *Client) GetDatabaseInfo(ctx context.Context, serverID, appID string) (*DatabaseInfo, error) {
	path := fmt.Sprintf("/apps/%s/database?server_id=%s", url.PathEscape(appID), url.QueryEscape(serverID))

	var info DatabaseInfo
	if err := c.do(ctx, http.MethodGet, path, nil, &info); err != nil {
		return nil, fmt.Errorf("get database info for app %s: %w", appID, err)
	}
	return &info, nil
}

// GetDatabaseUsers fetches the credentials of the database user the
// platform created for a database.
func (c *Client) GetDatabaseUsers(ctx context.Context, serverID, databaseID string) (*DatabaseUsers, error) {
	path := fmt.Sprintf("/databases/%s/users?server_id=%s", url.PathEscape(databaseID), url.QueryEscape(serverID))

	var users DatabaseUsers
	if err := c.do(ctx, http.MethodGet, path, nil, &users); err != nil {
		return nil, fmt.Errorf("get database users for %s: %w", databaseID, err)
	}
	return &users, nil
}

// InstallSSL installs an SSL certificate on an application. custom
// selects the platform's custom certificate mode over automatic
// issuance; forceHTTPS enables the HTTP-to-HTTPS redirect.
func (c *Client) InstallSSL(ctx context.Context, serverID, appID string, custom, forceHTTPS bool) error {
	payload := map[string]any{
		"server_id":   serverID,
		"app_id":      appID,
		"custom":      custom,
		"force_https": forceHTTPS,
	}

	if err := c.do(ctx, http.MethodPost, "/security/ssl", payload, nil); err != nil {
		return fmt.Errorf("install ssl for app %s: %w", appID, err)
	}
	return nil
}

// DeleteApp removes an application and its files from the server.
func (c *Client) DeleteApp(ctx context.Context, serverID, appID string) error {
	path := fmt.Sprintf("/apps/%s?server_id=%s", url.PathEscape(appID), url.QueryEscape(serverID))

	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete app %s: %w", appID, err)
	}
	return nil
}

// DeleteDatabase removes a database from the server. appID, when known,
// lets the platform detach the database from the application before
// dropping it.
func (c *Client) DeleteDatabase(ctx context.Context, serverID, databaseID, appID string) error {
	path := fmt.Sprintf("/databases/%s?server_id=%s", url.PathEscape(databaseID), url.QueryEscape(serverID))
	if appID != "" {
		path += "&app_id=" + url.QueryEscape(appID)
	}

	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete database %s: %w", databaseID, err)
	}
	return nil
}

// do issues a request, unwraps the response envelope, and decodes the
// data payload into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Code: env.ErrorCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
