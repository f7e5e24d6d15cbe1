package riotauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MrEthical07/riotauth/internal"
	"github.com/MrEthical07/riotauth/session"
	"github.com/MrEthical07/riotauth/token"
	"github.com/google/uuid"
)

const (
	auditStepBegin        = "authorization_request"
	auditStepCredentials  = "credential_submission"
	auditStepMultifactor  = "multifactor"
	auditStepTokens       = "token_extraction"
	auditStepEntitlements = "entitlements_exchange"
	auditStepPersist      = "state_persist"
)

// Authorize describes the authorize operation and its observable behavior.
//
// Authorize runs the provider's full challenge/response protocol with the
// given credentials and, on success, leaves the session holding the access
// token, scope, ID token, token type, expiry, user id, and entitlements
// token. Empty credentials rely on previously accumulated cookies
// (reauthentication); non-empty credentials clear the cookie store first so
// a credentialed login never rides a stale session. Runs on the same Engine
// serialize; every failure is surfaced, none are retried.
func (e *Engine) Authorize(ctx context.Context, creds Credentials) error {
	if e == nil || e.httpClient == nil {
		return ErrEngineNotReady
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	runID := uuid.NewString()

	if err := e.authorize(ctx, runID, creds); err != nil {
		e.metricInc(MetricAuthorizeFailure)
		return err
	}

	e.metricInc(MetricAuthorizeSuccess)
	return nil
}

func (e *Engine) authorize(ctx context.Context, runID string, creds Credentials) error {
	if creds.Username != "" && creds.Password != "" {
		if err := e.jar.Clear(); err != nil {
			return err
		}
	}

	data, err := e.beginAuthorization(ctx, runID)
	if err != nil {
		return err
	}

	// A "response" discriminant on the initiation request means prior
	// cookies alone satisfied the provider; credential submission is
	// skipped entirely.
	if data.Type != respTypeResponse {
		data, err = e.submitCredentials(ctx, runID, creds)
		if err != nil {
			return err
		}
	}

	if err := e.applyRedirect(ctx, runID, data); err != nil {
		return err
	}

	if err := e.fetchEntitlements(ctx, runID); err != nil {
		return err
	}

	return e.persistState(ctx, runID)
}

func (e *Engine) beginAuthorization(ctx context.Context, runID string) (*authResponse, error) {
	nonce, err := internal.NewNonce()
	if err != nil {
		return nil, err
	}

	body := authorizationRequest{
		ClientID:     e.config.Auth.ClientID,
		Nonce:        nonce,
		RedirectURI:  e.config.Auth.RedirectURI,
		ResponseType: e.config.Auth.ResponseType,
		Scope:        e.config.Auth.Scope,
	}
	if e.config.Auth.UseQueryResponseMode {
		body.ResponseMode = redirectModeQuery
	}

	var data authResponse
	if err := e.doJSON(ctx, http.MethodPost, e.config.Auth.AuthorizationURL, userAgentSuffixAuth, "", body, &data); err != nil {
		e.emitAudit(ctx, auditStepBegin, runID, false, err, nil)
		return nil, err
	}

	e.emitAudit(ctx, auditStepBegin, runID, true, nil, map[string]string{
		"response_type": data.Type,
	})
	return &data, nil
}

func (e *Engine) submitCredentials(ctx context.Context, runID string, creds Credentials) (*authResponse, error) {
	body := credentialsRequest{
		Language: e.config.Auth.Language,
		Password: creds.Password,
		Region:   nil,
		Remember: true,
		Type:     respTypeAuth,
		Username: creds.Username,
	}

	var data authResponse
	if err := e.doJSON(ctx, http.MethodPut, e.config.Auth.AuthorizationURL, userAgentSuffixAuth, "", body, &data); err != nil {
		e.emitAudit(ctx, auditStepCredentials, runID, false, err, nil)
		return nil, err
	}

	switch data.Type {
	case respTypeResponse:
		e.emitAudit(ctx, auditStepCredentials, runID, true, nil, nil)
		return &data, nil

	case respTypeAuth:
		var err error
		switch data.Error {
		case errAuthFailure:
			err = fmt.Errorf("%w: check that username and password are correct (%q)", ErrAuthenticationFailed, data.Error)
			e.metricInc(MetricAuthenticationFailure)
		case errRateLimited:
			err = ErrRateLimited
			e.metricInc(MetricRateLimited)
		default:
			err = fmt.Errorf("%w: %q during authentication", ErrUnknownErrorType, data.Error)
		}
		e.emitAudit(ctx, auditStepCredentials, runID, false, err, map[string]string{
			"provider_error": data.Error,
		})
		return nil, err

	case respTypeMultifactor:
		return e.submitMultifactor(ctx, runID, data.Multifactor)

	default:
		err := fmt.Errorf("%w: %q during authentication", ErrUnknownResponseType, data.Type)
		e.emitAudit(ctx, auditStepCredentials, runID, false, err, map[string]string{
			"response_type": data.Type,
		})
		return nil, err
	}
}

func (e *Engine) submitMultifactor(ctx context.Context, runID string, payload *multifactorPayload) (*authResponse, error) {
	e.metricInc(MetricMultifactorChallenged)

	if e.codeProvider == nil {
		err := fmt.Errorf("%w: no code provider configured", ErrMultifactorUnavailable)
		e.metricInc(MetricMultifactorFailure)
		e.emitAudit(ctx, auditStepMultifactor, runID, false, err, nil)
		return nil, err
	}

	var challenge MultifactorChallenge
	if payload != nil {
		challenge = MultifactorChallenge{
			Method:     payload.Method,
			Methods:    append([]string(nil), payload.Methods...),
			Email:      payload.Email,
			CodeLength: payload.CodeLength,
		}
	}

	code, err := e.codeProvider.MultifactorCode(ctx, challenge)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrMultifactorUnavailable, err)
		e.metricInc(MetricMultifactorFailure)
		e.emitAudit(ctx, auditStepMultifactor, runID, false, err, nil)
		return nil, err
	}

	body := multifactorRequest{
		Type:           respTypeMultifactor,
		RememberDevice: "true",
		Code:           code,
	}

	var data authResponse
	if err := e.doJSON(ctx, http.MethodPut, e.config.Auth.AuthorizationURL, userAgentSuffixAuth, "", body, &data); err != nil {
		e.emitAudit(ctx, auditStepMultifactor, runID, false, err, nil)
		return nil, err
	}

	if data.Error == errMultifactorAttemptFailed {
		e.metricInc(MetricMultifactorFailure)
		e.emitAudit(ctx, auditStepMultifactor, runID, false, ErrMultifactorAttemptFailed, nil)
		return nil, ErrMultifactorAttemptFailed
	}

	if data.Type != respTypeResponse {
		err := fmt.Errorf("%w: %q after multifactor submission", ErrUnknownResponseType, data.Type)
		e.metricInc(MetricMultifactorFailure)
		e.emitAudit(ctx, auditStepMultifactor, runID, false, err, nil)
		return nil, err
	}

	e.emitAudit(ctx, auditStepMultifactor, runID, true, nil, map[string]string{
		"method": challenge.Method,
	})
	return &data, nil
}

func (e *Engine) applyRedirect(ctx context.Context, runID string, data *authResponse) error {
	if data == nil || data.Response == nil {
		err := fmt.Errorf("%w: missing redirect payload", ErrUnknownResponseType)
		e.emitAudit(ctx, auditStepTokens, runID, false, err, nil)
		return err
	}

	target, err := url.Parse(data.Response.Parameters.URI)
	if err != nil {
		wrapped := fmt.Errorf("parse redirect uri: %w", err)
		e.emitAudit(ctx, auditStepTokens, runID, false, wrapped, nil)
		return wrapped
	}

	// ParseQuery percent-decodes, so both components must be taken in
	// escaped form or fragment values would decode twice.
	var component string
	switch data.Response.Mode {
	case redirectModeFragment:
		component = target.EscapedFragment()
	case redirectModeQuery:
		component = target.RawQuery
	default:
		err := fmt.Errorf("%w: redirect mode %q", ErrUnknownResponseType, data.Response.Mode)
		e.emitAudit(ctx, auditStepTokens, runID, false, err, nil)
		return err
	}

	values, err := url.ParseQuery(component)
	if err != nil {
		wrapped := fmt.Errorf("parse redirect values: %w", err)
		e.emitAudit(ctx, auditStepTokens, runID, false, wrapped, nil)
		return wrapped
	}

	e.sess.ClearTokens()
	e.sess.ApplyValues(values)

	if e.sess.AccessToken == "" || e.sess.TokenType == "" {
		err := fmt.Errorf("%w: redirect missing access_token or token_type", ErrUnknownResponseType)
		e.emitAudit(ctx, auditStepTokens, runID, false, err, nil)
		return err
	}

	// The JWT claims are authoritative for user id and expiry; they
	// override any same-named values merged from the URI.
	sub, exp, err := token.SubjectExpiry(e.sess.AccessToken)
	if err != nil {
		e.metricInc(MetricTokenDecodeFailure)
		e.emitAudit(ctx, auditStepTokens, runID, false, err, nil)
		return err
	}
	e.sess.UserID = sub
	e.sess.ExpiresAt = exp

	e.emitAudit(ctx, auditStepTokens, runID, true, nil, map[string]string{
		"mode": data.Response.Mode,
	})
	return nil
}

func (e *Engine) fetchEntitlements(ctx context.Context, runID string) error {
	authorization := e.sess.TokenType + " " + e.sess.AccessToken

	var resp entitlementsResponse
	if err := e.doJSON(ctx, http.MethodPost, e.config.Auth.EntitlementsURL, userAgentSuffixEntitlements, authorization, struct{}{}, &resp); err != nil {
		e.emitAudit(ctx, auditStepEntitlements, runID, false, err, nil)
		return err
	}

	if resp.EntitlementsToken == "" {
		err := fmt.Errorf("%w: entitlements response missing token", ErrUnknownResponseType)
		e.emitAudit(ctx, auditStepEntitlements, runID, false, err, nil)
		return err
	}

	e.sess.EntitlementsToken = resp.EntitlementsToken
	e.metricInc(MetricEntitlementsIssued)
	e.emitAudit(ctx, auditStepEntitlements, runID, true, nil, nil)
	return nil
}

func (e *Engine) persistState(ctx context.Context, runID string) error {
	if e.store == nil {
		return nil
	}

	state := session.Snapshot(e.sess, e.jar)
	if err := e.store.Save(ctx, state); err != nil {
		e.metricInc(MetricStateSaveFailure)
		e.emitAudit(ctx, auditStepPersist, runID, false, err, nil)
		return fmt.Errorf("persist session state: %w", err)
	}

	e.metricInc(MetricStateSaved)
	e.emitAudit(ctx, auditStepPersist, runID, true, nil, nil)
	return nil
}
