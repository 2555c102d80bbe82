// Package common defines shared constants and sentinel errors used across
// wisatacli layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session lifecycle errors.
	ErrSessionInactive = errors.New("inactive session")
	ErrSessionExpiring = errors.New("expired session")
)
