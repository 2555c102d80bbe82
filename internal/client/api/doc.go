// Package api implements the HTTP client for the dashboard backend.
//
// All requests go through a single http.RoundTripper that attaches the
// bearer token and a request id; a 401 response with success=false invokes a
// registered invalidation hook so stored credentials are cleared even when a
// call site forgets to handle auth errors. Transport failures are mapped to
// the sentinel errors in internal/common.
package api
