package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/wisataops/wisatacli/internal/client/api"
	"github.com/wisataops/wisatacli/internal/client/config"
	"github.com/wisataops/wisatacli/internal/client/session"
	"github.com/wisataops/wisatacli/internal/client/storage"
	"github.com/wisataops/wisatacli/internal/common"
	"github.com/wisataops/wisatacli/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App wires the client together: durable credential storage, the HTTP API
// client, the session guard and the terminal UI.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	client *api.HTTPClient
	guard  *session.Guard
	nav    *routeNavigator
	reader *bufio.Reader

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := storage.NewSQLiteRepository(db)
	nav := newRouteNavigator(session.Route{Path: "/"})
	client := api.NewHTTPClient(c.BackendURL, c.RequestTimeout, logger)
	guard := session.NewGuard(client, store, nav, logger)

	client.SetTokenSource(guard.Token)
	client.SetUnauthorizedHook(func() {
		guard.Invalidate(context.Background())
	})

	return &App{
		config: c,
		logger: logger.With("component", "cli"),
		db:     db,
		client: client,
		guard:  guard,
		nav:    nav,
		reader: bufio.NewReader(os.Stdin),
		mode:   ModeOnline,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.guard.IsLogged()
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		printlnFn("Switched to", string(mode), "mode")
	}
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

// status renders the prompt decoration: the logged-in email plus the
// connectivity mode.
func (a *App) status() string {
	s := ""
	if a.isLoggedIn() {
		s = a.guard.Email() + " "
	}
	s += string(a.getMode())
	return "(" + s + ")"
}

// Run restores the persisted session, falls back to an interactive login
// and then hands control to the REPL. It blocks until the user exits or
// stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	printlnFn("Welcome to the wisata admin CLI (type 'help' for commands)")

	a.guard.Bootstrap(ctx)
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// StartOnlineStatusWatcher periodically probes the session endpoint and
// flips the connectivity mode shown in the prompt. It returns when ctx is
// cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.isLoggedIn() {
				continue
			}
			probeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			_, err := a.client.CheckSession(probeCtx)
			cancel()

			if errors.Is(err, common.ErrUnavailable) {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
