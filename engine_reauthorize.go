package riotauth

import (
	"context"
	"errors"
)

// Reauthorize describes the reauthorize operation and its observable behavior.
//
// Reauthorize re-runs the authorization flow with empty credentials, relying
// solely on previously stored cookies. The credential-shaped failure that
// empty credentials naturally produce when no valid cookie session exists is
// converted to (false, nil); every other failure — rate limiting, unexpected
// multifactor demands, unknown responses — is not expected during a
// cookie-based reauthentication and propagates as an error.
func (e *Engine) Reauthorize(ctx context.Context) (bool, error) {
	err := e.Authorize(ctx, Credentials{})

	switch {
	case err == nil:
		e.metricInc(MetricReauthorizeSuccess)
		return true, nil
	case errors.Is(err, ErrAuthenticationFailed):
		e.metricInc(MetricReauthorizeFailure)
		return false, nil
	default:
		e.metricInc(MetricReauthorizeFailure)
		return false, err
	}
}
