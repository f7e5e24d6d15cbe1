package riotauth

// Wire bodies for the provider's authorization protocol. Field order and
// JSON names mirror the requests the legitimate client sends.

const (
	respTypeResponse    = "response"
	respTypeAuth        = "auth"
	respTypeMultifactor = "multifactor"

	errAuthFailure              = "auth_failure"
	errRateLimited              = "rate_limited"
	errMultifactorAttemptFailed = "multifactor_attempt_failed"

	redirectModeFragment = "fragment"
	redirectModeQuery    = "query"

	userAgentSuffixAuth         = "rso-auth"
	userAgentSuffixEntitlements = "entitlements"
)

type authorizationRequest struct {
	ACRValues           string `json:"acr_values"`
	Claims              string `json:"claims"`
	ClientID            string `json:"client_id"`
	CodeChallenge       string `json:"code_challenge"`
	CodeChallengeMethod string `json:"code_challenge_method"`
	Nonce               string `json:"nonce"`
	RedirectURI         string `json:"redirect_uri"`
	ResponseType        string `json:"response_type"`
	Scope               string `json:"scope"`
	ResponseMode        string `json:"response_mode,omitempty"`
}

type credentialsRequest struct {
	Language string  `json:"language"`
	Password string  `json:"password"`
	Region   *string `json:"region"`
	Remember bool    `json:"remember"`
	Type     string  `json:"type"`
	Username string  `json:"username"`
}

type multifactorRequest struct {
	Type           string `json:"type"`
	RememberDevice string `json:"rememberDevice"`
	Code           string `json:"code"`
}

type authResponse struct {
	Type        string              `json:"type"`
	Error       string              `json:"error,omitempty"`
	Response    *redirectPayload    `json:"response,omitempty"`
	Multifactor *multifactorPayload `json:"multifactor,omitempty"`
}

type redirectPayload struct {
	Mode       string             `json:"mode"`
	Parameters redirectParameters `json:"parameters"`
}

type redirectParameters struct {
	URI string `json:"uri"`
}

type multifactorPayload struct {
	Method     string   `json:"method"`
	Methods    []string `json:"methods,omitempty"`
	Email      string   `json:"email,omitempty"`
	CodeLength int      `json:"multiFactorCodeLength,omitempty"`
}

type entitlementsResponse struct {
	EntitlementsToken string `json:"entitlements_token"`
}
