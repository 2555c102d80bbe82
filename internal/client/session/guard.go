// Package session owns the single source of truth for "is this client
// authenticated": the session guard validates stored credentials on
// startup, exposes the auth state to the rest of the client, and performs
// logout. There is exactly one Guard per running client, passed by handle
// to whoever owns the UI; nothing here is a package-level singleton.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wisataops/wisatacli/internal/client/api"
	"github.com/wisataops/wisatacli/internal/client/models"
	"github.com/wisataops/wisatacli/internal/client/storage"
	"github.com/wisataops/wisatacli/internal/common"
	"github.com/wisataops/wisatacli/internal/logging"
)

// MinSessionValidity is the least remaining server-side validity, in
// seconds, for a session to be worth keeping. Anything shorter is treated
// as already expired so the user re-authenticates instead of being cut off
// mid-action.
const MinSessionValidity = 60

// UpdateCategory tags the kind of state an Update call carries.
type UpdateCategory int

const (
	CategoryUser UpdateCategory = iota
	CategoryToken
	CategoryIsLogged
)

// API is the slice of the backend client the guard needs.
type API interface {
	CheckSession(ctx context.Context) (*api.CheckSessionResult, error)
	Profile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

// Guard holds the client's authentication state.
//
// Invariants: IsLogged implies a non-nil user and a non-empty token.
// Checked transitions false to true exactly once per process and never
// reverts; it gates rendering of protected screens so the user never sees
// a flash of unauthenticated UI.
type Guard struct {
	client API
	store  storage.Repository
	nav    Navigator
	logger logging.Logger

	mu       sync.Mutex
	token    string
	email    string
	user     *models.User
	isLogged bool
	checked  bool
	checking bool
}

// NewGuard wires a guard to the API client, the durable credential store
// and the navigator.
func NewGuard(client API, store storage.Repository, nav Navigator, logger logging.Logger) *Guard {
	return &Guard{
		client: client,
		store:  store,
		nav:    nav,
		logger: logger.With("component", "session"),
	}
}

// Token returns the current bearer token, empty when absent. Wire this as
// the API client's token source.
func (g *Guard) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// Email returns the last known user email.
func (g *Guard) Email() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.email
}

// User returns the validated user record, nil before validation.
func (g *Guard) User() *models.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user
}

// IsLogged reports whether token presence and server-side validation both
// succeeded.
func (g *Guard) IsLogged() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isLogged
}

// Checked reports whether the initial validation round-trip has completed,
// successfully or not.
func (g *Guard) Checked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.checked
}

// TokenExpiry decodes the expiry claim of the current token without
// verifying the signature. Display and logging only; the server remains
// the authority on validity.
func (g *Guard) TokenExpiry() (time.Time, bool) {
	token := g.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Bootstrap validates stored credentials against the server once per
// process. With no stored token or email it marks the check done and
// redirects to login without any server call. Otherwise it checks the
// session, rejects sessions with under MinSessionValidity seconds left,
// fetches the profile, and restores the route that was active before the
// round-trip began in case the user was mid-navigation to a deep link.
// Every failure collapses into "not logged in" plus a login redirect; the
// cause only shows up in logs. Safe to call again: it is a no-op once
// checked or while a validation round-trip is outstanding.
func (g *Guard) Bootstrap(ctx context.Context) {
	g.mu.Lock()
	if g.isLogged || g.checked || g.checking {
		g.mu.Unlock()
		return
	}
	g.checking = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.checked = true
		g.checking = false
		g.mu.Unlock()
	}()

	token := g.readStored(ctx, common.StorageKeyToken)
	email := g.readStored(ctx, common.StorageKeyEmail)

	if token == "" || email == "" {
		g.logger.Info(ctx, "no stored credentials, redirecting to login")
		g.clearCredentials(ctx)
		g.nav.Navigate(LoginRoute, true)
		return
	}

	g.mu.Lock()
	g.token = token
	g.email = email
	g.mu.Unlock()

	origin := g.nav.Current()

	check, err := g.client.CheckSession(ctx)
	if err != nil {
		g.logger.Warn(ctx, "session check failed", "error", err)
		g.invalidate(ctx)
		return
	}
	if err := checkError(check); err != nil {
		g.logger.Info(ctx, "session rejected, forcing re-login", "error", err)
		g.invalidate(ctx)
		return
	}

	user, err := g.client.Profile(ctx)
	if err != nil {
		g.logger.Warn(ctx, "profile fetch failed", "error", err)
		g.invalidate(ctx)
		return
	}

	g.mu.Lock()
	g.user = user
	g.isLogged = true
	g.mu.Unlock()

	g.logger.Info(ctx, "session restored", "email", user.Email, "role", user.Role)

	// bootstrap may have raced a navigation; put the user back where they
	// were heading
	if current := g.nav.Current(); current != origin {
		g.nav.Navigate(origin, true)
	}
}

// checkError classifies a session check result. Inactive sessions and
// sessions with under MinSessionValidity seconds left both count as
// invalid.
func checkError(check *api.CheckSessionResult) error {
	if !check.Active {
		if check.Reason != "" {
			return fmt.Errorf("%w: %s", common.ErrSessionInactive, check.Reason)
		}
		return common.ErrSessionInactive
	}
	if check.ValidUntil < MinSessionValidity {
		return fmt.Errorf("%w: %d seconds left", common.ErrSessionExpiring, check.ValidUntil)
	}
	return nil
}

// Update is the tagged setter for auth state. User and token updates write
// through to durable storage; the logged flag is in-memory only.
func (g *Guard) Update(ctx context.Context, category UpdateCategory, value any) {
	switch category {
	case CategoryUser:
		user, ok := value.(*models.User)
		if !ok {
			g.logger.Error(ctx, "update user: unexpected payload type")
			return
		}
		g.mu.Lock()
		g.user = user
		g.email = user.Email
		g.mu.Unlock()
		g.writeStored(ctx, common.StorageKeyEmail, user.Email)

	case CategoryToken:
		token, ok := value.(string)
		if !ok {
			g.logger.Error(ctx, "update token: unexpected payload type")
			return
		}
		g.mu.Lock()
		g.token = token
		g.mu.Unlock()
		g.writeStored(ctx, common.StorageKeyToken, token)

	case CategoryIsLogged:
		logged, ok := value.(bool)
		if !ok {
			g.logger.Error(ctx, "update logged flag: unexpected payload type")
			return
		}
		g.mu.Lock()
		g.isLogged = logged
		g.mu.Unlock()
	}
}

// Logout tells the server to drop the session, then clears local state
// regardless of the outcome and navigates to login with history replaced
// so back-navigation cannot land on protected content.
func (g *Guard) Logout(ctx context.Context) {
	if err := g.client.Logout(ctx); err != nil {
		g.logger.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}
	g.invalidate(ctx)
}

// Invalidate clears credentials and redirects to login without touching
// the server. The API layer calls this when a response signals hard
// session invalidation.
func (g *Guard) Invalidate(ctx context.Context) {
	g.invalidate(ctx)
}

func (g *Guard) invalidate(ctx context.Context) {
	g.clearCredentials(ctx)
	g.nav.Navigate(LoginRoute, true)
}

// clearCredentials wipes both persisted keys and the in-memory state. The
// persisted pair goes in one atomic delete so a crash mid-logout cannot
// leave a token without its email or vice versa.
func (g *Guard) clearCredentials(ctx context.Context) {
	if err := g.store.DeleteAll(ctx, common.StorageKeyToken, common.StorageKeyEmail); err != nil {
		g.logger.Error(ctx, "storage delete failed", "error", err)
	}

	g.mu.Lock()
	g.token = ""
	g.email = ""
	g.user = nil
	g.isLogged = false
	g.mu.Unlock()
}

func (g *Guard) readStored(ctx context.Context, key string) string {
	value, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Error(ctx, "storage read failed", "key", key, "error", err)
		return ""
	}
	return string(value)
}

func (g *Guard) writeStored(ctx context.Context, key, value string) {
	if err := g.store.Set(ctx, key, []byte(value)); err != nil {
		g.logger.Error(ctx, "storage write failed", "key", key, "error", err)
	}
}
