package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wisataops/wisatacli/internal/client/models"
	"github.com/wisataops/wisatacli/internal/logging"
)

const maxResponseBody = 8 << 20

// envelope is the common response wrapper used by most dashboard endpoints.
// Row pages and the session check report their fields at the top level and
// bypass it.
type envelope struct {
	Success *bool               `json:"success"`
	Status  *bool               `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// CheckSessionResult is the POST /check-session payload. ValidUntil is the
// remaining session validity in seconds.
type CheckSessionResult struct {
	Active     bool   `json:"active"`
	Reason     string `json:"reason,omitempty"`
	ValidUntil int64  `json:"valid_until"`
}

// LoginResult is the data portion of a successful POST /login response.
type LoginResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// ColumnSpec is one server-described table column. A nil Sortable or
// Searchable means the server left the default in place.
type ColumnSpec struct {
	Data       string `json:"data"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Sortable   *bool  `json:"sortable,omitempty"`
	Searchable *bool  `json:"searchable,omitempty"`
}

// RowsResult is one page of server-side query results. All counts are
// server-reported; the client never recomputes them.
type RowsResult struct {
	Data            []map[string]any `json:"data"`
	Draw            int              `json:"draw"`
	RecordsTotal    int              `json:"recordsTotal"`
	RecordsFiltered int              `json:"recordsFiltered"`
}

// HTTPClient talks JSON to the dashboard backend. Construct with
// NewHTTPClient, then wire SetTokenSource and SetUnauthorizedHook before
// issuing authenticated calls.
type HTTPClient struct {
	baseURL   string
	transport *authTransport
	http      *http.Client
	logger    logging.Logger
}

// NewHTTPClient returns a client rooted at baseURL. timeout bounds every
// request including body read.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	t := &authTransport{base: http.DefaultTransport, logger: logger}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: t,
		http:      &http.Client{Timeout: timeout, Transport: t},
		logger:    logger.With("component", "api"),
	}
}

// SetTokenSource registers the callback providing the current bearer token.
// An empty return means no Authorization header is sent.
func (c *HTTPClient) SetTokenSource(fn func() string) {
	c.transport.tokenSource = fn
}

// SetUnauthorizedHook registers the callback invoked when the server
// hard-invalidates the session (401 with success=false).
func (c *HTTPClient) SetUnauthorizedHook(fn func()) {
	c.transport.onUnauthorized = fn
}

// do performs one request and returns the raw body of a 2xx response.
// Non-2xx statuses and transport failures come back as mapped errors.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, mapTransportError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnprocessableEntity {
		return nil, &ValidationError{Message: env.Message, Errors: env.Errors}
	}
	return nil, mapStatusError(resp.StatusCode, env.Message)
}

// doData performs a request and unmarshals the envelope's data field into out.
func (c *HTTPClient) doData(ctx context.Context, method, path string, query url.Values, body, out any) error {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if out == nil || env.Data == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// Login authenticates with email and password and returns the user record
// plus the access token to persist.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}

	raw, err := c.do(ctx, http.MethodPost, "/login", nil, payload)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if env.Success != nil && !*env.Success {
		return nil, fmt.Errorf("login rejected: %s", env.Message)
	}

	var result LoginResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode login data: %w", err)
	}
	if result.AccessToken == "" || result.User == nil {
		return nil, fmt.Errorf("incomplete login response")
	}
	return &result, nil
}

// Logout invalidates the server-side session.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	return err
}

// CheckSession asks the server whether the current token still names an
// active session and how long it remains valid.
func (c *HTTPClient) CheckSession(ctx context.Context) (*CheckSessionResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "/check-session", nil, nil)
	if err != nil {
		return nil, err
	}
	var result CheckSessionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode session check: %w", err)
	}
	return &result, nil
}

// Profile fetches the authenticated user record.
func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doData(ctx, http.MethodGet, "/dashboard/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileDetail fetches the extended profile shown on the profile page.
func (c *HTTPClient) ProfileDetail(ctx context.Context) (*models.ProfileDetail, error) {
	var detail models.ProfileDetail
	if err := c.doData(ctx, http.MethodGet, "/dashboard/profile/detail", nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateProfile changes the user's name and email. Server-side validation
// failures come back as *ValidationError.
func (c *HTTPClient) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	payload := map[string]string{"name": name, "email": email}
	var user models.User
	if err := c.doData(ctx, http.MethodPost, "/dashboard/profile/update", nil, payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword changes the user's password. Server-side validation
// failures come back as *ValidationError.
func (c *HTTPClient) UpdatePassword(ctx context.Context, current, newPassword, confirm string) error {
	payload := map[string]string{
		"current_password": current,
		"new_password":     newPassword,
		"confirm_password": confirm,
	}
	return c.doData(ctx, http.MethodPost, "/dashboard/profile/password", nil, payload, nil)
}

// Sidebar fetches the navigation items for the authenticated user.
func (c *HTTPClient) Sidebar(ctx context.Context) ([]models.SidebarItem, error) {
	var items []models.SidebarItem
	if err := c.doData(ctx, http.MethodGet, "/dashboard/sidebar", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Statistics fetches the dashboard home summary.
func (c *HTTPClient) Statistics(ctx context.Context) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.doData(ctx, http.MethodGet, "/dashboard/statistics", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SystemInformation fetches the server's system-information block.
func (c *HTTPClient) SystemInformation(ctx context.Context) (models.SystemInfo, error) {
	var info models.SystemInfo
	if err := c.doData(ctx, http.MethodGet, "/dashboard/system-information", nil, nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// Cards fetches the headline figures for one business collection.
func (c *HTTPClient) Cards(ctx context.Context, role, slug string) ([]models.Card, error) {
	var cards []models.Card
	path := BusinessEndpoint(role, slug) + "/cards"
	if err := c.doData(ctx, http.MethodGet, path, nil, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Fields fetches the form field descriptors for one business collection.
func (c *HTTPClient) Fields(ctx context.Context, role, slug string) ([]models.Field, error) {
	var fields []models.Field
	path := BusinessEndpoint(role, slug) + "/fields"
	if err := c.doData(ctx, http.MethodGet, path, nil, nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Columns fetches the column descriptors from columnsURL (usually the
// collection endpoint plus "/columns").
func (c *HTTPClient) Columns(ctx context.Context, columnsURL string) ([]ColumnSpec, error) {
	var cols []ColumnSpec
	if err := c.doData(ctx, http.MethodGet, columnsURL, nil, nil, &cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// Rows executes one server-side table query against endpoint.
func (c *HTTPClient) Rows(ctx context.Context, endpoint string, q *RowsQuery) (*RowsResult, error) {
	raw, err := c.do(ctx, http.MethodGet, endpoint, q.Values(), nil)
	if err != nil {
		return nil, err
	}
	var result RowsResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return &result, nil
}

// BusinessEndpoint builds the collection path for a business table,
// e.g. BusinessEndpoint("bumdes", "kas-harian") == "/dashboard/bumdes/kas-harian".
func BusinessEndpoint(role, slug string) string {
	return fmt.Sprintf("/dashboard/%s/%s", url.PathEscape(role), url.PathEscape(slug))
}
