package riotauth

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestReauthorizeSuccess(t *testing.T) {
	access := testAccessToken(t, "user-re", 500)

	provider := newFakeProvider()
	provider.postResponse = fragmentRedirect(t, access)

	engine := newTestEngine(t, provider)

	ok, err := engine.Reauthorize(context.Background())
	if err != nil {
		t.Fatalf("Reauthorize failed: %v", err)
	}
	if !ok {
		t.Fatal("expected reauthorization to succeed")
	}

	if puts := provider.CallsTo(http.MethodPut, "/api/v1/authorization"); len(puts) != 0 {
		t.Fatalf("cookie reauthorization must not submit credentials, saw %d PUTs", len(puts))
	}
	if engine.Session().UserID != "user-re" {
		t.Fatal("session not established")
	}
	if engine.MetricsSnapshot().Counters[MetricReauthorizeSuccess] != 1 {
		t.Fatal("reauthorize success counter not incremented")
	}
}

func TestReauthorizeExpiredCookies(t *testing.T) {
	// Without valid cookies the provider demands credentials; the empty
	// submission fails as auth_failure, which reads as "needs a fresh login"
	// rather than an error.
	provider := newFakeProvider()
	provider.putResponses = []string{`{"type":"auth","error":"auth_failure"}`}

	engine := newTestEngine(t, provider)

	ok, err := engine.Reauthorize(context.Background())
	if err != nil {
		t.Fatalf("expected auth_failure to be absorbed, got %v", err)
	}
	if ok {
		t.Fatal("expected reauthorization to report failure")
	}
	if engine.MetricsSnapshot().Counters[MetricReauthorizeFailure] != 1 {
		t.Fatal("reauthorize failure counter not incremented")
	}
}

func TestReauthorizePropagatesOtherErrors(t *testing.T) {
	provider := newFakeProvider()
	provider.putResponses = []string{`{"type":"auth","error":"rate_limited"}`}

	engine := newTestEngine(t, provider)

	ok, err := engine.Reauthorize(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited to propagate, got %v", err)
	}
	if ok {
		t.Fatal("expected reauthorization to report failure")
	}
}

func TestReauthorizeFromPersistedState(t *testing.T) {
	access := testAccessToken(t, "user-restored", 600)

	provider := newFakeProvider()
	provider.postResponse = fragmentRedirect(t, access)

	ts := newTestEngine(t, provider) // harness only; gives us the server URLs
	seedURL := ts.config.Auth.AuthorizationURL
	entURL := ts.config.Auth.EntitlementsURL

	cfg := defaultConfig()
	cfg.Auth.AuthorizationURL = seedURL
	cfg.Auth.EntitlementsURL = entURL

	state := sessionStateWithCookie("ssid", "restored", "127.0.0.1")

	engine, err := New().
		WithConfig(cfg).
		WithTransport(http.DefaultTransport).
		WithSessionState(state).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	ok, err := engine.Reauthorize(context.Background())
	if err != nil || !ok {
		t.Fatalf("Reauthorize = (%v, %v), want (true, nil)", ok, err)
	}

	calls := provider.CallsTo(http.MethodPost, "/api/v1/authorization")
	last := calls[len(calls)-1]
	if last.Cookie == "" {
		t.Fatal("restored cookies not sent to the provider")
	}
}
