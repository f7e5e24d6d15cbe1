package riotauth

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by riotauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Auth    AuthConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
AUTH CONFIG
====================================
*/

// AuthConfig defines a public type used by riotauth APIs.
//
// AuthConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuthConfig struct {
	AuthorizationURL string
	EntitlementsURL  string
	ClientID         string
	RedirectURI      string
	ResponseType     string
	Scope            string
	Language         string

	// UseQueryResponseMode asks the provider to return tokens in the
	// redirect's query string instead of the URL fragment.
	UseQueryResponseMode bool
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig defines a public type used by riotauth APIs.
//
// HTTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPConfig struct {
	// UserAgentFormat must contain one %s verb; the engine substitutes a
	// per-endpoint suffix ("rso-auth", "entitlements").
	UserAgentFormat string

	// Timeout applies to every request. Zero means transport default.
	Timeout time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by riotauth APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// RedisKey is the key the Redis-backed store persists session state
	// under when the engine is built with WithRedis.
	RedisKey string

	// StateTTL bounds the lifetime of persisted state. Zero means no expiry.
	StateTTL time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by riotauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled bool

	// BufferSize caps how many events may be queued for the sink. Emits
	// never block an authorization run; events beyond the buffer are
	// dropped and counted (see Engine.AuditDropped).
	BufferSize int
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by riotauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Auth: AuthConfig{
			AuthorizationURL: "https://auth.riotgames.com/api/v1/authorization",
			EntitlementsURL:  "https://entitlements.auth.riotgames.com/api/token/v1",
			ClientID:         "riot-client",
			RedirectURI:      "http://localhost/redirect",
			ResponseType:     "token id_token",
			Scope:            "openid link ban lol_region account",
			Language:         "en_US",
		},
		HTTP: HTTPConfig{
			UserAgentFormat: "RiotClient/62.0.1.4852117.4789131 %s (Windows;10;;Professional, x64)",
		},
		Session: SessionConfig{
			RedisKey: "riotauth:session",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All sections are value types; a shallow copy is a deep copy.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	for _, endpoint := range []struct {
		name  string
		value string
	}{
		{"Auth.AuthorizationURL", c.Auth.AuthorizationURL},
		{"Auth.EntitlementsURL", c.Auth.EntitlementsURL},
	} {
		if endpoint.value == "" {
			return errors.New(endpoint.name + " must be set")
		}
		u, err := url.Parse(endpoint.value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.New(endpoint.name + " must be an absolute URL")
		}
	}

	if c.Auth.ClientID == "" {
		return errors.New("Auth.ClientID must be set")
	}
	if c.Auth.RedirectURI == "" {
		return errors.New("Auth.RedirectURI must be set")
	}
	if c.Auth.ResponseType == "" {
		return errors.New("Auth.ResponseType must be set")
	}
	if c.Auth.Scope == "" {
		return errors.New("Auth.Scope must be set")
	}

	if strings.Count(c.HTTP.UserAgentFormat, "%s") != 1 {
		return errors.New("HTTP.UserAgentFormat must contain exactly one %s verb")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("HTTP.Timeout must not be negative")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit.BufferSize must be positive when audit is enabled")
	}
	if c.Session.StateTTL < 0 {
		return errors.New("Session.StateTTL must not be negative")
	}

	return nil
}
