package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wisataops/wisatacli/internal/client/session"
	"github.com/wisataops/wisatacli/internal/format"
)

// Whoami prints a one-line identity summary from the in-memory session.
func (a *App) Whoami(ctx context.Context) error {
	u := a.guard.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}
	line := fmt.Sprintf("%s <%s> - %s", u.Name, u.Email, format.UcFirst(u.Role))
	if exp, ok := a.guard.TokenExpiry(); ok {
		line += ", session valid until " + exp.Local().Format("15:04:05")
	}
	printlnFn(line)
	return nil
}

// Profile fetches and prints the full profile detail.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.client.ProfileDetail(ctx)
	if err != nil {
		printlnFn("Failed to load profile:", err.Error())
		return err
	}

	printlnFn("Name:       ", p.Name)
	printlnFn("Email:      ", p.Email)
	printlnFn("Role:       ", format.UcFirst(p.Role))
	if p.Phone != "" {
		printlnFn("Phone:      ", p.Phone)
	}
	if p.Address != "" {
		printlnFn("Address:    ", p.Address)
	}
	printlnFn("Member since:", format.FormatDate(p.CreatedAt))
	if len(p.Permissions) > 0 {
		printlnFn("Permissions:", strings.Join(p.Permissions, ", "))
	}
	return nil
}

// EditProfile prompts for a new name and email, validates them locally the
// way the dashboard form does, and submits the update. The stored profile
// is refreshed on success.
func (a *App) EditProfile(ctx context.Context) error {
	u := a.guard.User()
	if u == nil {
		printlnFn("Not logged in")
		return nil
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", u.Name), os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = u.Name
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", u.Email), os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		email = u.Email
	}

	if errs := validateProfileForm(name, email); errs != nil {
		printFieldErrors(errs)
		return fmt.Errorf("invalid profile input")
	}

	updated, err := a.client.UpdateProfile(ctx, name, email)
	if err != nil {
		if !printValidationErrors(err) {
			printlnFn("Failed to update profile:", err.Error())
		}
		return err
	}

	a.guard.Update(ctx, session.CategoryUser, updated)
	printlnFn("Profile updated")
	return nil
}

// ChangePassword prompts for the current and new password and submits the
// change. All three inputs are validated locally before the request.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	newPw, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}

	if errs := validatePasswordForm(current, newPw, confirm); errs != nil {
		printFieldErrors(errs)
		return fmt.Errorf("invalid password input")
	}

	if err := a.client.UpdatePassword(ctx, current, newPw, confirm); err != nil {
		if !printValidationErrors(err) {
			printlnFn("Failed to change password:", err.Error())
		}
		return err
	}

	printlnFn("Password changed")
	return nil
}

func printFieldErrors(errs map[string][]string) {
	for field, msgs := range errs {
		for _, m := range msgs {
			printlnFn(" -", field+":", m)
		}
	}
}
