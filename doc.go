// Package riotauth implements the Riot identity provider's username/password
// login flow as a client library: it negotiates the multi-step authorization
// protocol, extracts the access/ID token pair from the final redirect, and
// exchanges the access token for an entitlements token.
//
// The package is the public surface. It exposes [Engine], [Builder], [Config],
// [Credentials], the error sentinels, and the audit/metrics value types.
// Reusable leaves live in subpackages: tlsprofile (the fixed TLS negotiation
// fingerprint the provider expects from a legitimate client), token
// (unverified JWT claim extraction), and session (session state, cookie jar,
// persistence stores). Non-exported helpers live under internal/.
//
// # Architecture boundaries
//
//   - The Engine only issues logical HTTP requests; connection pooling and
//     record handling belong to the injected transport (by default one built
//     by tlsprofile).
//   - Multifactor code collection is an injected [CodeProvider]; the Engine
//     never performs interactive I/O.
//   - Persistence of cookies and tokens is an injected [session.Store]; the
//     Engine never touches the filesystem.
//
// # Concurrency contract
//
// One Engine drives one identity. Authorize and Reauthorize serialize on a
// per-engine mutex; callers that want parallel logins run independent
// engines. The TLS profile is immutable and shared safely across engines.
package riotauth
