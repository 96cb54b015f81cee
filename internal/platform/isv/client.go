// Package isv implements the backend clients for IBM Security Verify (SaaS).
//
// Verify exposes OAuth grants on a single token endpoint, transient email
// OTP under the factors API, SCIM user management, and a FIDO2 relying-party
// API. Everything here is plain REST; the gateway never interprets the
// cryptographic material it forwards.
package isv

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Credentials is an OAuth client id/secret pair.
type Credentials struct {
	ID     string
	Secret string
}

// Config configures the Verify client.
type Config struct {
	BaseURL        string
	RelyingPartyID string
	// API authorizes service-level calls (client-credentials grant, OTP).
	API Credentials
	// Auth authorizes end-user flows (password and JWT-bearer grants).
	Auth Credentials
	// ProxyURL, when set, routes all outbound calls through the proxy.
	ProxyURL *url.URL
}

// Client talks to one Verify tenant. It implements platform.UserClient,
// platform.WebAuthnClient and platform.TokenClient.
type Client struct {
	baseURL string
	rpID    string
	api     Credentials
	auth    Credentials
	http    *http.Client
}

// New creates a Verify client.
func New(cfg Config) *Client {
	transport := http.DefaultTransport
	if cfg.ProxyURL != nil {
		transport = &http.Transport{Proxy: http.ProxyURL(cfg.ProxyURL)}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		rpID:    cfg.RelyingPartyID,
		api:     cfg.API,
		auth:    cfg.Auth,
		http:    &http.Client{Timeout: defaultTimeout, Transport: transport},
	}
}

func (c *Client) url(path string) string { return c.baseURL + path }

// postJSON sends a JSON body with a bearer authorization and returns the
// status code and raw response body.
func (c *Client) postJSON(ctx context.Context, path, bearer string, body any) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, out, nil
}

func jsonDecode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
