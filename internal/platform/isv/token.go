package isv

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/authgate/internal/platform"
	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenPath      = "/v1.0/endpoint/default/token"
	jwtBearerGrant = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	assertionLifetime = 5 * time.Minute
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error,omitempty"`
	ErrorDesc   string `json:"error_description,omitempty"`
}

// PasswordGrant exchanges end-user credentials for a token.
func (c *Client) PasswordGrant(ctx context.Context, username, password string) (*platform.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.auth.ID)
	form.Set("client_secret", c.auth.Secret)
	form.Set("username", username)
	form.Set("password", password)
	return c.tokenGrant(ctx, form)
}

// ClientCredentialsGrant obtains a service-level token with the API pair.
func (c *Client) ClientCredentialsGrant(ctx context.Context) (*platform.Token, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.api.ID)
	form.Set("client_secret", c.api.Secret)
	return c.tokenGrant(ctx, form)
}

// JWTBearerGrant exchanges a signed assertion for a token.
func (c *Client) JWTBearerGrant(ctx context.Context, assertion string) (*platform.Token, error) {
	form := url.Values{}
	form.Set("grant_type", jwtBearerGrant)
	form.Set("client_id", c.auth.ID)
	form.Set("client_secret", c.auth.Secret)
	form.Set("assertion", assertion)
	return c.tokenGrant(ctx, form)
}

// SignedAssertion builds an HS256 assertion over the end-user client secret.
// The audience is the token endpoint the assertion will be presented to.
func (c *Client) SignedAssertion(subject, issuer string) (string, error) {
	now := time.Now().UTC()
	claims := jwtv5.MapClaims{
		"iss": issuer,
		"sub": subject,
		"aud": c.url(tokenPath),
		"iat": now.Unix(),
		"exp": now.Add(assertionLifetime).Unix(),
		"jti": uuid.NewString(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := tk.SignedString([]byte(c.auth.Secret))
	if err != nil {
		return "", fmt.Errorf("isv: sign assertion: %w", err)
	}
	return signed, nil
}

func (c *Client) tokenGrant(ctx context.Context, form url.Values) (*platform.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(tokenPath), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("isv: token endpoint: %w", err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := jsonDecode(resp.Body, &tr); err != nil {
		return nil, fmt.Errorf("isv: decode token response: %w", err)
	}
	if tr.Error != "" {
		return nil, fmt.Errorf("isv: token grant failed: %s - %s", tr.Error, tr.ErrorDesc)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("isv: token grant failed: status %d, no access_token", resp.StatusCode)
	}
	return &platform.Token{
		AccessToken: tr.AccessToken,
		TokenType:   tr.TokenType,
		ExpiresIn:   tr.ExpiresIn,
	}, nil
}
