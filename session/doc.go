// Package session owns the mutable authentication session: the seven token
// fields produced by one authorization run, the cookie jar those runs
// accumulate, and the persistence stores that carry both across processes.
//
// # Cookie jar
//
// Go's cookie jar interface is write-only, so [Jar] wraps the stdlib jar and
// records every Set-Cookie it sees. The record is what gets serialized into
// [State]; the stdlib jar keeps its public-suffix and matching semantics for
// live requests.
//
// # Architecture boundaries
//
// This package owns session state and persistence. It does NOT drive the
// authorization protocol, decode tokens, or open connections — those
// responsibilities belong to the Engine and its sibling packages.
//
// # What this package must NOT do
//
//   - Import riotauth, token, or tlsprofile (no upward imports).
//   - Perform HTTP requests of its own.
package session
