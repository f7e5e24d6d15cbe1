// Package tlsprofile pins the TLS negotiation fingerprint the identity
// provider expects from the legitimate client: an exact cipher suite order,
// an exact signature algorithm order, ALPN restricted to http/1.1, and a
// TLS 1.0 floor. Go's crypto/tls neither preserves caller cipher order nor
// exposes the signature algorithm list, so the profile is expressed as a
// uTLS ClientHelloSpec, whose public API controls all four knobs directly.
//
// A [Profile] is immutable after construction and safe to share across any
// number of connections and engines.
package tlsprofile
