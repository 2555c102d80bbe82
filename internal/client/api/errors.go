package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/wisataops/wisatacli/internal/common"
)

// ValidationError carries the field-level error lists from a 422 response.
// Keys are form field names, values are the human-readable messages for
// that field.
type ValidationError struct {
	Message string
	Errors  map[string][]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// AsValidationError unwraps err into a *ValidationError, if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// mapTransportError converts low-level request failures into sentinels.
func mapTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	return err
}

// mapStatusError converts a non-2xx status into a sentinel or a plain error.
// message is the server-provided envelope message, possibly empty.
func mapStatusError(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return common.ErrUnauthorized
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: HTTP %d", common.ErrUnavailable, status)
	case status == http.StatusNotFound:
		return common.ErrNotFound
	case message != "":
		return fmt.Errorf("HTTP %d: %s", status, message)
	default:
		return fmt.Errorf("unexpected status: HTTP %d", status)
	}
}
