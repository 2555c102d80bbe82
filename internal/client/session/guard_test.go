package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisataops/wisatacli/internal/client/api"
	"github.com/wisataops/wisatacli/internal/client/models"
	"github.com/wisataops/wisatacli/internal/common"
	"github.com/wisataops/wisatacli/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeStore is an in-memory storage.Repository.
type fakeStore struct {
	data map[string][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{data: map[string][]byte{}} }

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) { return s.data[key], nil }
func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}
func (s *fakeStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}
func (s *fakeStore) DeleteAll(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}
func (s *fakeStore) List(_ context.Context) (map[string][]byte, error) { return s.data, nil }
func (s *fakeStore) Clear(_ context.Context) error {
	s.data = map[string][]byte{}
	return nil
}

// fakeNav records navigations.
type fakeNav struct {
	current Route
	history []navCall
}

type navCall struct {
	route   Route
	replace bool
}

func (n *fakeNav) Current() Route { return n.current }
func (n *fakeNav) Navigate(r Route, replace bool) {
	n.current = r
	n.history = append(n.history, navCall{route: r, replace: replace})
}

// fakeAPI scripts the guard's server interactions.
type fakeAPI struct {
	checkRes    *api.CheckSessionResult
	checkErr    error
	checkCalls  int
	onCheck     func()
	profileRes  *models.User
	profileErr  error
	logoutErr   error
	logoutCalls int
}

func (f *fakeAPI) CheckSession(context.Context) (*api.CheckSessionResult, error) {
	f.checkCalls++
	if f.onCheck != nil {
		f.onCheck()
	}
	return f.checkRes, f.checkErr
}

func (f *fakeAPI) Profile(context.Context) (*models.User, error) {
	return f.profileRes, f.profileErr
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func adminUser() *models.User {
	return &models.User{ID: 1, Name: "Admin", Email: "admin@example.com", Role: "admin"}
}

func storedCredentials(s *fakeStore) {
	s.data[common.StorageKeyToken] = []byte("tok-abc")
	s.data[common.StorageKeyEmail] = []byte("admin@example.com")
}

func TestBootstrap_MissingCredentials(t *testing.T) {
	client := &fakeAPI{}
	store := newFakeStore()
	nav := &fakeNav{current: Route{Path: "/"}}
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())

	assert.True(t, g.Checked())
	assert.False(t, g.IsLogged())
	assert.Zero(t, client.checkCalls, "no server call without stored credentials")
	require.NotEmpty(t, nav.history)
	assert.Equal(t, LoginRoute, nav.history[0].route)
	assert.True(t, nav.history[0].replace)
}

func TestBootstrap_ValidSession(t *testing.T) {
	client := &fakeAPI{
		checkRes:   &api.CheckSessionResult{Active: true, ValidUntil: 3600},
		profileRes: adminUser(),
	}
	store := newFakeStore()
	storedCredentials(store)
	nav := &fakeNav{current: Route{Path: "/"}}
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())

	assert.True(t, g.Checked())
	assert.True(t, g.IsLogged())
	require.NotNil(t, g.User())
	assert.Equal(t, "admin@example.com", g.User().Email)
	assert.Equal(t, "tok-abc", g.Token())
	assert.Empty(t, nav.history, "no redirect when already on the origin route")
}

func TestBootstrap_ExpiringSession(t *testing.T) {
	client := &fakeAPI{
		checkRes:   &api.CheckSessionResult{Active: true, ValidUntil: 30},
		profileRes: adminUser(),
	}
	store := newFakeStore()
	storedCredentials(store)
	nav := &fakeNav{current: Route{Path: "/"}}
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())

	assert.True(t, g.Checked())
	assert.False(t, g.IsLogged())
	assert.Empty(t, store.data, "credentials cleared")
	assert.Empty(t, g.Token())
	require.NotEmpty(t, nav.history)
	assert.Equal(t, LoginRoute, nav.history[0].route)
}

func TestBootstrap_InactiveSession(t *testing.T) {
	client := &fakeAPI{
		checkRes: &api.CheckSessionResult{Active: false, Reason: "revoked"},
	}
	store := newFakeStore()
	storedCredentials(store)
	nav := &fakeNav{current: Route{Path: "/"}}
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())

	assert.False(t, g.IsLogged())
	assert.Empty(t, store.data)
}

func TestCheckError_Sentinels(t *testing.T) {
	err := checkError(&api.CheckSessionResult{Active: false, Reason: "revoked"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSessionInactive))
	assert.Contains(t, err.Error(), "revoked")

	err = checkError(&api.CheckSessionResult{Active: true, ValidUntil: MinSessionValidity - 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrSessionExpiring))

	assert.NoError(t, checkError(&api.CheckSessionResult{Active: true, ValidUntil: MinSessionValidity}))
}

func TestBootstrap_CheckFailure(t *testing.T) {
	client := &fakeAPI{checkErr: errors.New("boom")}
	store := newFakeStore()
	storedCredentials(store)
	nav := &fakeNav{current: Route{Path: "/"}}
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())

	assert.True(t, g.Checked())
	assert.False(t, g.IsLogged())
	assert.Empty(t, store.data)
}

func TestBootstrap_ProfileFailure(t *testing.T) {
	client := &fakeAPI{
		checkRes:   &api.CheckSessionResult{Active: true, ValidUntil: 3600},
		profileErr: errors.New("boom"),
	}
	store := newFakeStore()
	storedCredentials(store)
	nav := &fakeNav{current: Route{Path: "/"}}
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())

	assert.False(t, g.IsLogged())
	assert.Nil(t, g.User())
	assert.Empty(t, store.data)
}

func TestBootstrap_RestoresDeepLink(t *testing.T) {
	deepLink := Route{Path: "/usaha/bumdes/kas-harian", Query: "page=3"}
	nav := &fakeNav{current: deepLink}

	client := &fakeAPI{
		checkRes:   &api.CheckSessionResult{Active: true, ValidUntil: 3600},
		profileRes: adminUser(),
	}
	// the user keeps navigating while validation is in flight
	client.onCheck = func() { nav.current = Route{Path: "/"} }

	store := newFakeStore()
	storedCredentials(store)
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())

	assert.True(t, g.IsLogged())
	require.NotEmpty(t, nav.history)
	last := nav.history[len(nav.history)-1]
	assert.Equal(t, deepLink, last.route, "deep link restored with query intact")
	assert.True(t, last.replace)
}

func TestBootstrap_IdempotentOnceChecked(t *testing.T) {
	client := &fakeAPI{checkErr: errors.New("boom")}
	store := newFakeStore()
	storedCredentials(store)
	nav := &fakeNav{current: Route{Path: "/"}}
	g := NewGuard(client, store, nav, testLogger())

	g.Bootstrap(context.Background())
	require.Equal(t, 1, client.checkCalls)

	g.Bootstrap(context.Background())
	g.Bootstrap(context.Background())
	assert.Equal(t, 1, client.checkCalls, "validation runs at most once per process")
}

func TestUpdate_WritesThrough(t *testing.T) {
	store := newFakeStore()
	nav := &fakeNav{}
	g := NewGuard(&fakeAPI{}, store, nav, testLogger())
	ctx := context.Background()

	g.Update(ctx, CategoryToken, "tok-next")
	assert.Equal(t, "tok-next", g.Token())
	assert.Equal(t, []byte("tok-next"), store.data[common.StorageKeyToken])

	g.Update(ctx, CategoryUser, adminUser())
	assert.Equal(t, "admin@example.com", g.Email())
	assert.Equal(t, []byte("admin@example.com"), store.data[common.StorageKeyEmail])

	g.Update(ctx, CategoryIsLogged, true)
	assert.True(t, g.IsLogged())
	assert.False(t, g.Checked(), "only bootstrap completes the initial check")
}

func TestLogout_ClearsEverythingEvenOnServerError(t *testing.T) {
	client := &fakeAPI{logoutErr: errors.New("network down")}
	store := newFakeStore()
	storedCredentials(store)
	nav := &fakeNav{current: Route{Path: "/profile"}}
	g := NewGuard(client, store, nav, testLogger())
	ctx := context.Background()

	g.Update(ctx, CategoryToken, "tok-abc")
	g.Update(ctx, CategoryUser, adminUser())
	g.Update(ctx, CategoryIsLogged, true)

	g.Logout(ctx)

	assert.Equal(t, 1, client.logoutCalls)
	assert.Empty(t, store.data, "both storage keys removed")
	assert.Empty(t, g.Token())
	assert.Nil(t, g.User())
	assert.False(t, g.IsLogged())
	require.NotEmpty(t, nav.history)
	last := nav.history[len(nav.history)-1]
	assert.Equal(t, LoginRoute, last.route)
	assert.True(t, last.replace)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("irrelevant"))
	require.NoError(t, err)

	g := NewGuard(&fakeAPI{}, newFakeStore(), &fakeNav{}, testLogger())
	g.Update(context.Background(), CategoryToken, raw)

	got, ok := g.TokenExpiry()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestTokenExpiry_OpaqueToken(t *testing.T) {
	g := NewGuard(&fakeAPI{}, newFakeStore(), &fakeNav{}, testLogger())
	g.Update(context.Background(), CategoryToken, "not-a-jwt")

	_, ok := g.TokenExpiry()
	assert.False(t, ok)
}
