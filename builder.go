package riotauth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MrEthical07/riotauth/session"
	"github.com/MrEthical07/riotauth/tlsprofile"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by riotauth APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	store        session.Store
	seedState    *session.State
	codeProvider CodeProvider
	auditSink    AuditSink
	transport    http.RoundTripper

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// When no explicit session store is set, Build wraps the client in a
// [session.RedisStore] keyed by Config.Session.RedisKey.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithSessionStore describes the withsessionstore operation and its observable behavior.
//
// WithSessionStore may return an error when input validation, dependency calls, or security checks fail.
// WithSessionStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSessionStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithSessionState seeds the engine with previously persisted state (tokens
// and cookies), enabling a cookie-based Reauthorize in a fresh process.
func (b *Builder) WithSessionState(state session.State) *Builder {
	b.seedState = &state
	return b
}

// WithCodeProvider describes the withcodeprovider operation and its observable behavior.
//
// WithCodeProvider may return an error when input validation, dependency calls, or security checks fail.
// WithCodeProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCodeProvider(provider CodeProvider) *Builder {
	b.codeProvider = provider
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithTransport overrides the profile-configured transport. Intended for
// tests and callers that tunnel through their own dialer; production use
// should keep the default so the negotiation fingerprint stays pinned.
func (b *Builder) WithTransport(transport http.RoundTripper) *Builder {
	b.transport = transport
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil && b.redis != nil {
		store = session.NewRedisStore(b.redis, cfg.Session.RedisKey, cfg.Session.StateTTL)
	}

	transport := b.transport
	if transport == nil {
		// Startup-time failure by contract: a host that cannot express the
		// pinned negotiation profile must not degrade to stack defaults.
		profile, err := tlsprofile.New()
		if err != nil {
			return nil, fmt.Errorf("tls profile: %w", err)
		}
		transport = profile.NewTransport()
	}

	jar, err := session.NewJar()
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   cfg.HTTP.Timeout,
		},
		jar:          jar,
		sess:         &session.Session{},
		store:        store,
		codeProvider: b.codeProvider,
		audit:        newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:      NewMetrics(cfg.Metrics),
	}

	if b.seedState != nil {
		b.seedState.Apply(engine.sess, engine.jar)
	}

	b.built = true
	return engine, nil
}
