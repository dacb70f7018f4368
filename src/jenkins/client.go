// Package jenkins provides an HTTP client for fetching console logs and build
// metadata from Jenkins instances. It is the only I/O boundary of the
// analysis core: extractors receive fully materialized strings.
package jenkins

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"jenkins-distill/src/config"
)

// Fetcher is the fetch collaborator consumed by the MCP tool layer.
// jobPath must already carry /job/ separators (see resolver.NormalizeJobPath);
// buildID is a build number or alias such as "lastBuild".
type Fetcher interface {
	ConsoleText(ctx context.Context, jobPath, buildID string) (string, error)
	BuildInfo(ctx context.Context, jobPath, buildID string) (*Build, error)
}

// Client is a Jenkins API client for a single instance.
type Client struct {
	baseURL    string
	user       string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a client for the given instance using the configured
// timeouts and TLS policy.
func NewClient(instance config.Instance, settings config.Settings) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: settings.HTTPConnectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: settings.HTTPTimeout,
	}
	if !settings.VerifySSL {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL:  instance.BaseURL,
		user:     instance.User,
		apiToken: instance.APIToken,
		httpClient: &http.Client{
			// Console logs can be large; the overall deadline follows the
			// read timeout rather than the per-request header timeout.
			Timeout:   settings.HTTPReadTimeout,
			Transport: transport,
		},
	}
}

// ConsoleText fetches the plain-text console log for a build.
func (c *Client) ConsoleText(ctx context.Context, jobPath, buildID string) (string, error) {
	url := fmt.Sprintf("%s/job/%s/%s/consoleText", c.baseURL, jobPath, buildID)

	body, err := c.get(ctx, url, "text/plain")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// BuildInfo fetches and decodes the api/json document for a build.
func (c *Client) BuildInfo(ctx context.Context, jobPath, buildID string) (*Build, error) {
	url := fmt.Sprintf("%s/job/%s/%s/api/json", c.baseURL, jobPath, buildID)

	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, err
	}

	var build Build
	if err := json.Unmarshal(body, &build); err != nil {
		return nil, fmt.Errorf("failed to decode build info: %w", err)
	}
	return &build, nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.user, c.apiToken)
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrAuthFailed, url)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return body, nil
}
