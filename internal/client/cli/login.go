package cli

import (
	"context"
	"errors"
	"os"

	"github.com/wisataops/wisatacli/internal/client/api"
	"github.com/wisataops/wisatacli/internal/client/session"
	"github.com/wisataops/wisatacli/internal/common"
)

// Login prompts for credentials, authenticates against the backend and
// persists the resulting token and profile through the session guard.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		a.logger.Error(ctx, "reading email", "error", err)
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		a.logger.Error(ctx, "reading password", "error", err)
		return err
	}

	if email == "" || password == "" {
		printlnFn("Email and password are required")
		return errors.New("empty credentials")
	}

	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUnavailable):
			printlnFn("Server unavailable, try again later")
			a.setMode(ModeOffline)
		case printValidationErrors(err):
		case errors.Is(err, common.ErrUnauthorized):
			printlnFn("Login failed: wrong email or password")
		default:
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	a.guard.Update(ctx, session.CategoryToken, res.AccessToken)
	a.guard.Update(ctx, session.CategoryUser, res.User)
	a.guard.Update(ctx, session.CategoryIsLogged, true)
	a.nav.Navigate(session.Route{Path: "/"}, true)
	a.setMode(ModeOnline)

	printlnFn("Logged in as", res.User.Email)
	return nil
}

// Logout drops the server session and clears stored credentials. Local
// state is cleared even when the server call fails.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}
	a.guard.Logout(ctx)
	printlnFn("Logged out")
	return nil
}

// printValidationErrors renders a 422 response field by field. It reports
// whether err actually was a validation error.
func printValidationErrors(err error) bool {
	ve, ok := api.AsValidationError(err)
	if !ok {
		return false
	}
	if ve.Message != "" {
		printlnFn(ve.Message)
	}
	for field, msgs := range ve.Errors {
		for _, m := range msgs {
			printlnFn(" -", field+":", m)
		}
	}
	return true
}
