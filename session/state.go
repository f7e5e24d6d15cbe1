package session

// State is the serializable snapshot of one session: the seven token fields
// plus the recorded cookies. The Engine hands a State to its [Store] after
// every successful run, and a new Engine can be seeded from one to attempt a
// cookie-based reauthorization without credentials.
type State struct {
	AccessToken       string   `json:"access_token,omitempty"`
	Scope             string   `json:"scope,omitempty"`
	IDToken           string   `json:"id_token,omitempty"`
	TokenType         string   `json:"token_type,omitempty"`
	ExpiresAt         int64    `json:"expires_at,omitempty"`
	UserID            string   `json:"user_id,omitempty"`
	EntitlementsToken string   `json:"entitlements_token,omitempty"`
	Cookies           []Cookie `json:"cookies,omitempty"`
}

// Snapshot captures the session and jar into a State.
func Snapshot(s *Session, jar *Jar) State {
	state := State{
		AccessToken:       s.AccessToken,
		Scope:             s.Scope,
		IDToken:           s.IDToken,
		TokenType:         s.TokenType,
		ExpiresAt:         s.ExpiresAt,
		UserID:            s.UserID,
		EntitlementsToken: s.EntitlementsToken,
	}
	if jar != nil {
		state.Cookies = jar.Snapshot()
	}
	return state
}

// Apply writes the state's token fields into s and restores its cookies into
// jar.
func (st State) Apply(s *Session, jar *Jar) {
	s.AccessToken = st.AccessToken
	s.Scope = st.Scope
	s.IDToken = st.IDToken
	s.TokenType = st.TokenType
	s.ExpiresAt = st.ExpiresAt
	s.UserID = st.UserID
	s.EntitlementsToken = st.EntitlementsToken

	if jar != nil {
		jar.Restore(st.Cookies)
	}
}
