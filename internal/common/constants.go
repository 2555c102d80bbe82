// Package common contains shared constants and sentinel errors used across
// wisatacli components.
package common

// Keys under which the session guard persists credentials in local storage.
// Only the session guard writes them; everything else reads through it.
const (
	StorageKeyToken = "auth_token"
	StorageKeyEmail = "auth_email"
)

// AuthorizationHeader is the HTTP header carrying the bearer token on
// outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries a per-request id used for log correlation.
const RequestIDHeader = "X-Request-Id"
