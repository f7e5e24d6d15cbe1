package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

func sampleState() State {
	return State{
		AccessToken:       "tok",
		Scope:             "openid",
		IDToken:           "idtok",
		TokenType:         "Bearer",
		ExpiresAt:         1735689600,
		UserID:            "user-1",
		EntitlementsToken: "ent",
		Cookies: []Cookie{{
			Name:   "ssid",
			Value:  "abc",
			Domain: "auth.example.com",
			Path:   "/",
		}},
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, "riotauth:test", 0)

	want := sampleState()
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.AccessToken != want.AccessToken || got.UserID != want.UserID ||
		got.EntitlementsToken != want.EntitlementsToken || got.ExpiresAt != want.ExpiresAt {
		t.Fatalf("loaded state mismatch: %+v", got)
	}
	if len(got.Cookies) != 1 || got.Cookies[0].Name != "ssid" {
		t.Fatalf("cookies not round-tripped: %+v", got.Cookies)
	}
}

func TestRedisStoreLoadEmpty(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisStore(client, "riotauth:test", 0)

	if _, err := store.Load(context.Background()); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestRedisStoreTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "riotauth:test", time.Minute)

	if err := store.Save(context.Background(), sampleState()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(context.Background()); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected expiry to surface as ErrStateNotFound, got %v", err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	store := NewRedisStore(client, "riotauth:test", 0)

	if err := store.Save(context.Background(), sampleState()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on Save, got %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on Load, got %v", err)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Load(context.Background()); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound on empty store, got %v", err)
	}

	want := sampleState()
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.AccessToken != want.AccessToken || len(got.Cookies) != 1 {
		t.Fatalf("loaded state mismatch: %+v", got)
	}

	// The stored copy must be isolated from caller mutation.
	got.Cookies[0].Value = "mutated"
	again, _ := store.Load(context.Background())
	if again.Cookies[0].Value != "abc" {
		t.Fatalf("store leaked internal slice: %+v", again.Cookies)
	}
}
