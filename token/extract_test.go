package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
)

func buildToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".signature"
}

func TestSubjectExpiry(t *testing.T) {
	raw := buildToken(t, map[string]any{
		"sub": "user-4821",
		"exp": 1735689600,
		"iss": "https://auth.example.com",
	})

	sub, exp, err := SubjectExpiry(raw)
	if err != nil {
		t.Fatalf("SubjectExpiry failed: %v", err)
	}
	if sub != "user-4821" {
		t.Fatalf("expected subject user-4821, got %q", sub)
	}
	if exp != 1735689600 {
		t.Fatalf("expected expiry 1735689600, got %d", exp)
	}
}

func TestSubjectExpiryMissingClaims(t *testing.T) {
	raw := buildToken(t, map[string]any{"iss": "https://auth.example.com"})

	sub, exp, err := SubjectExpiry(raw)
	if err != nil {
		t.Fatalf("SubjectExpiry failed: %v", err)
	}
	if sub != "" || exp != 0 {
		t.Fatalf("expected zero values for missing claims, got sub=%q exp=%d", sub, exp)
	}
}

func TestSubjectExpiryPaddedSegment(t *testing.T) {
	// Padded base64url segments must decode; the provider is not obliged to
	// strip padding.
	header := base64.URLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"padded-user","exp":42}`))
	raw := header + "." + payload + ".sig"

	sub, exp, err := SubjectExpiry(raw)
	if err != nil {
		t.Fatalf("SubjectExpiry failed on padded segments: %v", err)
	}
	if sub != "padded-user" || exp != 42 {
		t.Fatalf("unexpected claims: sub=%q exp=%d", sub, exp)
	}
}

func TestSubjectExpiryMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no segments", "garbage"},
		{"two segments", "aaaa.bbbb"},
		{"invalid base64", "aaaa.!!!!.cccc"},
		{"payload not json", "aaaa." + base64.RawURLEncoding.EncodeToString([]byte("not-json")) + ".cccc"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := SubjectExpiry(tc.raw); !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestExtractCustomPairs(t *testing.T) {
	raw := buildToken(t, map[string]any{
		"sub": "user-1",
		"acr": "urn:riot:bronze",
	})

	got, err := Extract(raw, []ClaimPair{
		{Claim: "acr", Field: "assurance"},
		{Claim: "missing", Field: "absent"},
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got["assurance"] != "urn:riot:bronze" {
		t.Fatalf("expected mapped acr claim, got %v", got["assurance"])
	}
	if value, ok := got["absent"]; !ok || value != nil {
		t.Fatalf("expected nil placeholder for missing claim, got %v (present=%v)", value, ok)
	}
}

func TestExtractMalformed(t *testing.T) {
	if _, err := Extract("x.y", nil); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
