package tlsprofile

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	utls "github.com/refraction-networking/utls"
)

// cipherSuites13 is the TLS 1.3 suite order, most preferred first.
var cipherSuites13 = []uint16{
	utls.TLS_CHACHA20_POLY1305_SHA256,
	utls.TLS_AES_128_GCM_SHA256,
	utls.TLS_AES_256_GCM_SHA384,
}

// cipherSuites is the pre-1.3 suite order, most preferred first. The final
// 3DES entry is expected to be unavailable on the peer and skipped during
// negotiation, but it must still be offered.
var cipherSuites = []uint16{
	utls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
	utls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
	utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
	utls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
	utls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
	utls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
	utls.TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA,
	utls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
	utls.TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA,
	utls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
	utls.TLS_RSA_WITH_AES_128_GCM_SHA256,
	utls.TLS_RSA_WITH_AES_256_GCM_SHA384,
	utls.TLS_RSA_WITH_AES_128_CBC_SHA,
	utls.TLS_RSA_WITH_AES_256_CBC_SHA,
	utls.TLS_RSA_WITH_3DES_EDE_CBC_SHA,
}

// signatureAlgorithms is the sigalg order. The trailing PKCS1-SHA1 entry is
// ignored by modern peers but must still be offered.
var signatureAlgorithms = []utls.SignatureScheme{
	utls.ECDSAWithP256AndSHA256,
	utls.PSSWithSHA256,
	utls.PKCS1WithSHA256,
	utls.ECDSAWithP384AndSHA384,
	utls.PSSWithSHA384,
	utls.PKCS1WithSHA384,
	utls.PSSWithSHA512,
	utls.PKCS1WithSHA512,
	utls.PKCS1WithSHA1,
}

var alpnProtocols = []string{"http/1.1"}

// Profile is an immutable TLS negotiation profile. Construct with [New];
// share freely.
type Profile struct {
	suites13   []uint16
	suites     []uint16
	sigalgs    []utls.SignatureScheme
	alpn       []string
	minVersion uint16
}

// New builds the pinned profile. Construction validates the negotiation
// lists once so a misbuilt profile fails at startup, not per request; spec
// application errors on individual dials still surface per connection.
func New() (*Profile, error) {
	p := &Profile{
		suites13:   append([]uint16(nil), cipherSuites13...),
		suites:     append([]uint16(nil), cipherSuites...),
		sigalgs:    append([]utls.SignatureScheme(nil), signatureAlgorithms...),
		alpn:       append([]string(nil), alpnProtocols...),
		minVersion: utls.VersionTLS10,
	}

	if len(p.suites13) == 0 || len(p.suites) == 0 || len(p.sigalgs) == 0 || len(p.alpn) == 0 {
		return nil, errors.New("tlsprofile: negotiation list empty")
	}
	for _, id := range append(append([]uint16(nil), p.suites13...), p.suites...) {
		if id == 0 {
			return nil, errors.New("tlsprofile: zero cipher suite id")
		}
	}

	return p, nil
}

// CipherSuites13 returns the TLS 1.3 suite order.
func (p *Profile) CipherSuites13() []uint16 {
	return append([]uint16(nil), p.suites13...)
}

// CipherSuites returns the pre-1.3 suite order.
func (p *Profile) CipherSuites() []uint16 {
	return append([]uint16(nil), p.suites...)
}

// SignatureAlgorithms returns the signature scheme order.
func (p *Profile) SignatureAlgorithms() []utls.SignatureScheme {
	return append([]utls.SignatureScheme(nil), p.sigalgs...)
}

// ALPNProtocols returns the offered ALPN identifiers.
func (p *Profile) ALPNProtocols() []string {
	return append([]string(nil), p.alpn...)
}

// MinVersion returns the protocol floor (TLS 1.0; the peer negotiates up).
func (p *Profile) MinVersion() uint16 {
	return p.minVersion
}

// clientHelloSpec builds a fresh spec per connection. uTLS extensions carry
// per-handshake state, so one spec value must never be shared across dials.
// Encrypt-then-MAC is disabled by construction: the extension list below
// does not include it, and uTLS only offers listed extensions.
func (p *Profile) clientHelloSpec() *utls.ClientHelloSpec {
	suites := make([]uint16, 0, len(p.suites13)+len(p.suites))
	suites = append(suites, p.suites13...)
	suites = append(suites, p.suites...)

	return &utls.ClientHelloSpec{
		TLSVersMin:         p.minVersion,
		TLSVersMax:         utls.VersionTLS13,
		CipherSuites:       suites,
		CompressionMethods: []byte{0},
		Extensions: []utls.TLSExtension{
			&utls.SNIExtension{},
			&utls.ExtendedMasterSecretExtension{},
			&utls.SupportedCurvesExtension{Curves: []utls.CurveID{
				utls.X25519,
				utls.CurveP256,
				utls.CurveP384,
				utls.CurveP521,
			}},
			&utls.SupportedPointsExtension{SupportedPoints: []byte{0}},
			&utls.SessionTicketExtension{},
			&utls.ALPNExtension{AlpnProtocols: append([]string(nil), p.alpn...)},
			&utls.StatusRequestExtension{},
			&utls.SignatureAlgorithmsExtension{
				SupportedSignatureAlgorithms: append([]utls.SignatureScheme(nil), p.sigalgs...),
			},
			&utls.SCTExtension{},
			&utls.KeyShareExtension{KeyShares: []utls.KeyShare{
				{Group: utls.X25519},
				{Group: utls.CurveP256},
			}},
			&utls.PSKKeyExchangeModesExtension{Modes: []uint8{utls.PskModeDHE}},
			&utls.SupportedVersionsExtension{Versions: []uint16{
				utls.VersionTLS13,
				utls.VersionTLS12,
				utls.VersionTLS11,
				utls.VersionTLS10,
			}},
			&utls.RenegotiationInfoExtension{Renegotiation: utls.RenegotiateOnceAsClient},
		},
	}
}

// DialTLSContext dials addr and completes a handshake carrying the profile's
// exact ClientHello. Suitable for http.Transport.DialTLSContext.
func (p *Profile) DialTLSContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}

	var dialer net.Dialer
	raw, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	conn := utls.UClient(raw, &utls.Config{
		ServerName: host,
		MinVersion: p.minVersion,
		NextProtos: append([]string(nil), p.alpn...),
	}, utls.HelloCustom)

	if err := conn.ApplyPreset(p.clientHelloSpec()); err != nil {
		raw.Close()
		return nil, fmt.Errorf("tlsprofile: apply spec: %w", err)
	}
	if err := conn.HandshakeContext(ctx); err != nil {
		raw.Close()
		return nil, err
	}

	return conn, nil
}

// NewTransport returns an http.Transport whose TLS connections carry the
// profile. ALPN offers http/1.1 only, so HTTP/2 is never attempted.
func (p *Profile) NewTransport() *http.Transport {
	return &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DialTLSContext:    p.DialTLSContext,
		ForceAttemptHTTP2: false,
	}
}
