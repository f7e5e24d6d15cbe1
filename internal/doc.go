// Package internal contains helper utilities that are intentionally private
// to riotauth, currently secure nonce generation for the authorization
// initiation request.
//
// # What this package must NOT do
//
//   - Export types that appear in the public riotauth API.
//   - Be imported by any package outside the riotauth module.
package internal
