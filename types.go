package riotauth

import (
	"context"

	"github.com/MrEthical07/riotauth/session"
)

// Credentials defines a public type used by riotauth APIs.
//
// An empty pair signals "reauthenticate via cookies": the engine then relies
// solely on the cookies accumulated by a previous run.
type Credentials struct {
	Username string
	Password string
}

// Empty reports whether the pair signals a cookie-based reauthentication.
func (c Credentials) Empty() bool {
	return c.Username == "" && c.Password == ""
}

// MultifactorChallenge carries the provider's multifactor descriptor. The
// engine hands it to the configured [CodeProvider] and submits whatever code
// comes back.
type MultifactorChallenge struct {
	Method     string
	Methods    []string
	Email      string
	CodeLength int
}

// CodeProvider supplies one-time multifactor codes. The engine blocks on
// MultifactorCode mid-flow; implementations may prompt a human, read a
// message inbox, or return a precomputed code. Returning an error aborts the
// authorization run.
type CodeProvider interface {
	MultifactorCode(ctx context.Context, challenge MultifactorChallenge) (string, error)
}

// CodeProviderFunc adapts a function to the [CodeProvider] interface.
type CodeProviderFunc func(ctx context.Context, challenge MultifactorChallenge) (string, error)

// MultifactorCode describes the multifactorcode operation and its observable behavior.
func (f CodeProviderFunc) MultifactorCode(ctx context.Context, challenge MultifactorChallenge) (string, error) {
	return f(ctx, challenge)
}

// SessionState is the serializable snapshot handed to persistence stores.
//
//	Docs: session package.
type SessionState = session.State

// SessionStore persists session state between runs.
//
//	Docs: session package.
type SessionStore = session.Store
