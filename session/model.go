package session

import (
	"net/url"
	"strconv"
)

// Session holds the mutable authentication session populated by one
// authorization run. Token fields are fully overwritten by each successful
// run; cookies accumulate in the [Jar] across runs.
type Session struct {
	AccessToken       string
	Scope             string
	IDToken           string
	TokenType         string
	ExpiresAt         int64
	UserID            string
	EntitlementsToken string
}

// ClearTokens resets every token field to its zero value. Called before a
// run's token-setting step so stale values from a previous run never
// survive a partial merge.
func (s *Session) ClearTokens() {
	*s = Session{}
}

// ApplyValues merges redirect-URI key/value pairs into the session. Only the
// allow-listed keys below are touched; unknown keys are dropped without
// error. The list is deliberately explicit — untrusted response data must
// never reach a field by name coincidence.
func (s *Session) ApplyValues(values url.Values) {
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		value := vals[0]

		switch key {
		case "access_token":
			s.AccessToken = value
		case "scope":
			s.Scope = value
		case "id_token":
			s.IDToken = value
		case "token_type":
			s.TokenType = value
		case "expires_at":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				s.ExpiresAt = n
			}
		case "user_id":
			s.UserID = value
		case "entitlements_token":
			s.EntitlementsToken = value
		}
	}
}
