package riotauth

import (
	"errors"

	"github.com/MrEthical07/riotauth/token"
)

var (
	// ErrAuthenticationFailed is an exported constant or variable used by the authentication engine.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrRateLimited is an exported constant or variable used by the authentication engine.
	ErrRateLimited = errors.New("rate limited by the identity provider")
	// ErrMultifactorAttemptFailed is an exported constant or variable used by the authentication engine.
	ErrMultifactorAttemptFailed = errors.New("multifactor attempt failed")
	// ErrMultifactorUnavailable is an exported constant or variable used by the authentication engine.
	ErrMultifactorUnavailable = errors.New("multifactor code unavailable")
	// ErrUnknownErrorType is an exported constant or variable used by the authentication engine.
	ErrUnknownErrorType = errors.New("unknown error type in provider response")
	// ErrUnknownResponseType is an exported constant or variable used by the authentication engine.
	ErrUnknownResponseType = errors.New("unknown response type from provider")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// ErrMalformedToken is returned when the access token's claim segment cannot
// be decoded. It aliases [token.ErrMalformed] so callers matching with
// errors.Is need only import this package.
var ErrMalformedToken = token.ErrMalformed
