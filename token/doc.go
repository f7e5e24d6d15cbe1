// Package token reads claims out of bearer tokens without verifying them.
//
// The identity provider hands the client an already-issued access token; the
// client only needs the subject and expiry claims to fill its session state.
// Signature and expiry validation are deliberately out of scope — a token
// that does not even decode is an engine-level defect, surfaced as
// [ErrMalformed], never a recoverable condition.
package token
