package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/wisataops/wisatacli/internal/common"
	"github.com/wisataops/wisatacli/internal/logging"
)

// maxSniffBody bounds how much of a 401 body is read when deciding whether
// the session was invalidated.
const maxSniffBody = 1 << 20

// authTransport decorates every outgoing request with the bearer token and a
// request id, and watches responses for the hard session-invalidation signal
// (401 + success=false).
type authTransport struct {
	base           http.RoundTripper
	tokenSource    func() string
	onUnauthorized func()
	logger         logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", "application/json")
	if req.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeader, uuid.NewString())

	if t.tokenSource != nil {
		if token := t.tokenSource(); token != "" {
			req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxSniffBody))
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))

		var env struct {
			Success *bool  `json:"success"`
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &env); jsonErr == nil && env.Success != nil && !*env.Success {
			t.logger.Warn(req.Context(), "session invalidated by server",
				"message", env.Message, "path", req.URL.Path)
			if t.onUnauthorized != nil {
				t.onUnauthorized()
			}
		}
	}

	return resp, nil
}
