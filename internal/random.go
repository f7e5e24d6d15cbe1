package internal

import (
	"crypto/rand"
	"encoding/base64"
)

const nonceSize = 16

// NewNonce returns a fresh 16-byte nonce encoded as unpadded base64url, the
// form the authorization endpoint expects in its initiation body.
func NewNonce() (string, error) {
	var raw [nonceSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}
