// Package config loads the gateway configuration from a YAML file with
// environment-variable overrides. Configuration is resolved once at startup;
// an invalid configuration is fatal and the process does not start.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
		// PublicURL is the externally reachable address of this gateway.
		// Used as the issuer of bearer assertions built for the
		// JWT-bearer grant.
		PublicURL string `yaml:"public_url"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Platform struct {
		// Kind selects the backend identity platform: "isv" | "isva".
		Kind           string `yaml:"kind"`
		BaseURL        string `yaml:"base_url"`
		RelyingPartyID string `yaml:"relying_party_id"`
		Proxy          struct {
			Host string `yaml:"host"`
			Port int    `yaml:"port"`
		} `yaml:"proxy"`
	} `yaml:"platform"`

	// OAuth carries the two independent client-credential pairs: "api" for
	// service-level access (client-credentials grant, OTP administration)
	// and "auth" for end-user flows (password and JWT-bearer grants).
	OAuth struct {
		API  ClientPair `yaml:"api"`
		Auth ClientPair `yaml:"auth"`
	} `yaml:"oauth"`

	Cache struct {
		Kind  string `yaml:"kind"` // "memory" | "redis"
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	// RateLimit throttles the public endpoints per client IP with a fixed
	// window. Backed by redis when the cache is, in-process otherwise.
	RateLimit struct {
		Enabled bool   `yaml:"enabled"`
		Max     int    `yaml:"max"`
		Window  string `yaml:"window"`
	} `yaml:"rate_limit"`
}

// ClientPair is an OAuth client id/secret pair.
type ClientPair struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// Load reads the YAML file at path (optional: empty path skips the file),
// applies environment overrides and defaults. Call Validate before use.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setStr := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setStr(&c.App.Env, "AUTHGATE_ENV")
	setStr(&c.Server.Addr, "AUTHGATE_ADDR")
	setStr(&c.Server.PublicURL, "AUTHGATE_PUBLIC_URL")
	setStr(&c.Log.Level, "AUTHGATE_LOG_LEVEL")
	setStr(&c.Platform.Kind, "AUTHGATE_PLATFORM")
	setStr(&c.Platform.BaseURL, "AUTHGATE_PLATFORM_BASE_URL")
	setStr(&c.Platform.RelyingPartyID, "AUTHGATE_RELYING_PARTY_ID")
	setStr(&c.Platform.Proxy.Host, "AUTHGATE_PROXY_HOST")
	if v := os.Getenv("AUTHGATE_PROXY_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Platform.Proxy.Port = n
		}
	}
	setStr(&c.OAuth.API.ClientID, "AUTHGATE_API_CLIENT_ID")
	setStr(&c.OAuth.API.ClientSecret, "AUTHGATE_API_CLIENT_SECRET")
	setStr(&c.OAuth.Auth.ClientID, "AUTHGATE_AUTH_CLIENT_ID")
	setStr(&c.OAuth.Auth.ClientSecret, "AUTHGATE_AUTH_CLIENT_SECRET")
	setStr(&c.Cache.Kind, "AUTHGATE_CACHE")
	setStr(&c.Cache.Redis.Addr, "AUTHGATE_REDIS_ADDR")
	setStr(&c.Cache.Redis.Prefix, "AUTHGATE_REDIS_PREFIX")
	if v := os.Getenv("AUTHGATE_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cache.Redis.DB = n
		}
	}
	if v := os.Getenv("AUTHGATE_RATE_LIMIT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.RateLimit.Enabled = b
		}
	}
	if v := os.Getenv("AUTHGATE_RATE_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit.Max = n
		}
	}
	setStr(&c.RateLimit.Window, "AUTHGATE_RATE_WINDOW")
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.PublicURL == "" {
		c.Server.PublicURL = "http://localhost:8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.RateLimit.Max == 0 {
		c.RateLimit.Max = 60
	}
	if c.RateLimit.Window == "" {
		c.RateLimit.Window = "1m"
	}
}

// RateWindow returns the parsed rate-limit window. Validate has already
// rejected unparseable values when the limiter is enabled.
func (c *Config) RateWindow() time.Duration {
	d, err := time.ParseDuration(c.RateLimit.Window)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Validate checks everything the gateway cannot run without.
func (c *Config) Validate() error {
	var missing []string

	switch c.Platform.Kind {
	case "isv", "isva":
	case "":
		missing = append(missing, "platform.kind")
	default:
		return fmt.Errorf("config: platform.kind must be \"isv\" or \"isva\", got %q", c.Platform.Kind)
	}

	if c.Platform.BaseURL == "" {
		missing = append(missing, "platform.base_url")
	}
	if c.Platform.RelyingPartyID == "" {
		missing = append(missing, "platform.relying_party_id")
	}
	if c.OAuth.API.ClientID == "" || c.OAuth.API.ClientSecret == "" {
		missing = append(missing, "oauth.api client pair")
	}
	if c.OAuth.Auth.ClientID == "" || c.OAuth.Auth.ClientSecret == "" {
		missing = append(missing, "oauth.auth client pair")
	}
	if c.Cache.Kind == "redis" && c.Cache.Redis.Addr == "" {
		missing = append(missing, "cache.redis.addr")
	}
	if c.RateLimit.Enabled {
		if _, err := time.ParseDuration(c.RateLimit.Window); err != nil {
			return fmt.Errorf("config: rate_limit.window: %w", err)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
