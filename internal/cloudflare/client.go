// Package cloudflare is a minimal Cloudflare DNS client covering the
// record operations site provisioning needs.
package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
	zoneID     string
}

// NewClient creates a Cloudflare client scoped to a single zone. Empty
// credentials leave the client unconfigured; provisioning then skips DNS
// record creation entirely.
func NewClient(apiToken, zoneID string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		apiToken:   apiToken,
		zoneID:     zoneID,
	}
}

// Configured reports whether the client has an API token and zone.
func (c *Client) Configured() bool {
	return c.apiToken != "" && c.zoneID != ""
}

type apiResponse struct {
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
	Result json.RawMessage `json:"result"`
}

// CreateARecord creates an A record in the zone and returns its record
// identifier. name is the record name relative to the zone (the
// subdomain); proxied routes traffic through Cloudflare's CDN.
func (c *Client) CreateARecord(ctx context.Context, name, ipAddress string, proxied bool) (string, error) {
	payload := map[string]any{
		"type":    "A",
		"name":    name,
		"content": ipAddress,
		"proxied": proxied,
		"ttl":     1, // automatic
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal create record: %w", err)
	}

	url := fmt.Sprintf("%s/zones/%s/dns_records", c.baseURL, c.zoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create record request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create record %s: %w", name, err)
	}
	defer resp.Body.Close()

	api, err := decodeResponse(resp)
	if err != nil {
		return "", fmt.Errorf("create record %s: %w", name, err)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(api.Result, &result); err != nil {
		return "", fmt.Errorf("decode record id: %w", err)
	}
	return result.ID, nil
}

// DeleteRecord deletes a DNS record from the zone by its identifier.
func (c *Client) DeleteRecord(ctx context.Context, recordID string) error {
	url := fmt.Sprintf("%s/zones/%s/dns_records/%s", c.baseURL, c.zoneID, recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("delete record request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete record %s: %w", recordID, err)
	}
	defer resp.Body.Close()

	if _, err := decodeResponse(resp); err != nil {
		return fmt.Errorf("delete record %s: %w", recordID, err)
	}
	return nil
}

func decodeResponse(resp *http.Response) (*apiResponse, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if !api.Success {
		if len(api.Errors) > 0 {
			return nil, fmt.Errorf("status %d: %s (code %d)", resp.StatusCode, api.Errors[0].Message, api.Errors[0].Code)
		}
		return nil, fmt.Errorf("status %d: request failed", resp.StatusCode)
	}
	return &api, nil
}
