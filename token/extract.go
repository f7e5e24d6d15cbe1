package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when a token's claim segment is not valid base64
// or does not contain a JSON object.
var ErrMalformed = errors.New("malformed token")

// ClaimPair maps one claim name onto a caller-chosen field name.
type ClaimPair struct {
	Claim string
	Field string
}

// Extract decodes the unverified claim segment of a three-segment token and
// returns the requested claims keyed by their pair's Field name. Claims
// absent from the payload are returned as nil values, mirroring a map lookup
// miss rather than an error.
func Extract(raw string, pairs []ClaimPair) (map[string]any, error) {
	claims, err := decode(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		out[pair.Field] = claims[pair.Claim]
	}
	return out, nil
}

// SubjectExpiry decodes the unverified claim segment and returns the subject
// ("sub") and expiry ("exp", epoch seconds) claims. A missing claim yields
// its zero value; a token that cannot be decoded yields an error wrapping
// [ErrMalformed].
func SubjectExpiry(raw string) (string, int64, error) {
	claims, err := decode(raw)
	if err != nil {
		return "", 0, err
	}

	sub, err := claims.GetSubject()
	if err != nil {
		sub = ""
	}

	var exp int64
	if date, err := claims.GetExpirationTime(); err == nil && date != nil {
		exp = date.Unix()
	}

	return sub, exp, nil
}

func decode(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithPaddingAllowed())

	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}
