// Package selector resolves the active identity platform at startup and
// constructs the concrete backend clients bound to it. Pure configuration:
// the selection is made once and never revisited at runtime.
package selector

import (
	"fmt"
	"net/url"

	"github.com/dropDatabas3/authgate/internal/config"
	"github.com/dropDatabas3/authgate/internal/platform"
	"github.com/dropDatabas3/authgate/internal/platform/isv"
	"github.com/dropDatabas3/authgate/internal/platform/isva"
)

// Clients bundles the three backend-client roles for the active platform.
// For both platforms a single concrete client fills all three roles.
type Clients struct {
	Platform platform.Platform
	Users    platform.UserClient
	WebAuthn platform.WebAuthnClient
	Tokens   platform.TokenClient
}

// New parses the configured platform kind and builds its clients.
func New(cfg *config.Config) (*Clients, error) {
	p, err := platform.Parse(cfg.Platform.Kind)
	if err != nil {
		return nil, err
	}

	proxyURL, err := proxyFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	switch p {
	case platform.ISV:
		c := isv.New(isv.Config{
			BaseURL:        cfg.Platform.BaseURL,
			RelyingPartyID: cfg.Platform.RelyingPartyID,
			API:            isv.Credentials{ID: cfg.OAuth.API.ClientID, Secret: cfg.OAuth.API.ClientSecret},
			Auth:           isv.Credentials{ID: cfg.OAuth.Auth.ClientID, Secret: cfg.OAuth.Auth.ClientSecret},
			ProxyURL:       proxyURL,
		})
		return &Clients{Platform: p, Users: c, WebAuthn: c, Tokens: c}, nil
	case platform.ISVA:
		c := isva.New(isva.Config{
			BaseURL:        cfg.Platform.BaseURL,
			RelyingPartyID: cfg.Platform.RelyingPartyID,
			API:            isva.Credentials{ID: cfg.OAuth.API.ClientID, Secret: cfg.OAuth.API.ClientSecret},
			Auth:           isva.Credentials{ID: cfg.OAuth.Auth.ClientID, Secret: cfg.OAuth.Auth.ClientSecret},
			ProxyURL:       proxyURL,
		})
		return &Clients{Platform: p, Users: c, WebAuthn: c, Tokens: c}, nil
	default:
		return nil, fmt.Errorf("selector: unhandled platform %q", p)
	}
}

func proxyFromConfig(cfg *config.Config) (*url.URL, error) {
	if cfg.Platform.Proxy.Host == "" {
		return nil, nil
	}
	raw := fmt.Sprintf("http://%s:%d", cfg.Platform.Proxy.Host, cfg.Platform.Proxy.Port)
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("selector: invalid proxy address %q: %w", raw, err)
	}
	return u, nil
}
