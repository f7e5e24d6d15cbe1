package riotauth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MrEthical07/riotauth/session"
)

// providerCall records one request as the fake identity provider saw it.
type providerCall struct {
	Method        string
	Path          string
	Body          map[string]any
	Cookie        string
	Authorization string
	UserAgent     string
}

// fakeProvider scripts the identity provider's authorization and entitlements
// endpoints. PUT responses are consumed in order so multi-step flows
// (credentials then multifactor) can be exercised.
type fakeProvider struct {
	mu    sync.Mutex
	calls []providerCall

	postResponse string
	putResponses []string
	entitlements string
	setCookies   []*http.Cookie
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		postResponse: `{"type":"auth"}`,
		entitlements: `{"entitlements_token":"ent-token"}`,
	}
}

func (p *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := providerCall{
		Method:        r.Method,
		Path:          r.URL.Path,
		Cookie:        r.Header.Get("Cookie"),
		Authorization: r.Header.Get("Authorization"),
		UserAgent:     r.Header.Get("User-Agent"),
	}
	if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &call.Body)
	}

	p.mu.Lock()
	p.calls = append(p.calls, call)
	putIndex := 0
	for _, c := range p.calls[:len(p.calls)-1] {
		if c.Method == http.MethodPut {
			putIndex++
		}
	}
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/api/v1/authorization" && r.Method == http.MethodPost:
		for _, c := range p.setCookies {
			http.SetCookie(w, c)
		}
		fmt.Fprint(w, p.postResponse)

	case r.URL.Path == "/api/v1/authorization" && r.Method == http.MethodPut:
		if putIndex >= len(p.putResponses) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"type":"error"}`)
			return
		}
		fmt.Fprint(w, p.putResponses[putIndex])

	case r.URL.Path == "/api/token/v1" && r.Method == http.MethodPost:
		fmt.Fprint(w, p.entitlements)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *fakeProvider) Calls() []providerCall {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]providerCall(nil), p.calls...)
}

func (p *fakeProvider) CallsTo(method, path string) []providerCall {
	var out []providerCall
	for _, c := range p.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// newTestEngine points the engine at the fake provider over the httptest
// server's plain transport.
func newTestEngine(t *testing.T, provider *fakeProvider, opts ...func(*Builder)) *Engine {
	t.Helper()

	ts := httptest.NewServer(provider)
	t.Cleanup(ts.Close)

	cfg := defaultConfig()
	cfg.Auth.AuthorizationURL = ts.URL + "/api/v1/authorization"
	cfg.Auth.EntitlementsURL = ts.URL + "/api/token/v1"

	builder := New().
		WithConfig(cfg).
		WithTransport(http.DefaultTransport)
	for _, opt := range opts {
		opt(builder)
	}

	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

// testAccessToken builds an unsigned JWT whose sub and exp claims identify
// the session owner.
func testAccessToken(t *testing.T, sub string, exp int64) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"sub": sub, "exp": exp})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".signature"
}

// redirectJSON builds a terminal "response" body carrying tokens in the
// given redirect component.
func redirectJSON(t *testing.T, mode, uri string) string {
	t.Helper()

	data, err := json.Marshal(map[string]any{
		"type": "response",
		"response": map[string]any{
			"mode":       mode,
			"parameters": map[string]any{"uri": uri},
		},
	})
	if err != nil {
		t.Fatalf("marshal redirect: %v", err)
	}
	return string(data)
}

func fragmentRedirect(t *testing.T, accessToken string) string {
	t.Helper()

	uri := "http://localhost/redirect#access_token=" + accessToken +
		"&scope=openid+link&id_token=idtok&token_type=Bearer&expires_in=3600&session_state=opaque"
	return redirectJSON(t, "fragment", uri)
}

func sessionStateWithCookie(name, value, domain string) session.State {
	return session.State{Cookies: []session.Cookie{{
		Name:   name,
		Value:  value,
		Domain: domain,
		Path:   "/",
	}}}
}

// staticCodeProvider answers every multifactor challenge with a fixed code
// and records the challenge it was handed.
type staticCodeProvider struct {
	mu        sync.Mutex
	code      string
	err       error
	challenge MultifactorChallenge
	called    int
}

func (p *staticCodeProvider) MultifactorCode(_ context.Context, challenge MultifactorChallenge) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.called++
	p.challenge = challenge
	return p.code, p.err
}
