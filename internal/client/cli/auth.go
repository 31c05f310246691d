package cli

import (
	"context"
	"fmt"

	"github.com/trufund/trufund/internal/common"
)

// Login prompts the user for credentials and tries to authenticate.
//
// Field errors are printed without any network call. A rejected login prints
// the generic failure message so the prompt does not leak which part of the
// credentials was wrong. The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fe, err := a.login.Submit(ctx, identifier, string(password))
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if !fe.Valid() {
		a.printFieldErrors(fe)
		return nil
	}

	fmt.Fprintln(a.out, "Logged in.")
	a.setMode(ModeOnline)
	return nil
}

// Logout clears the persisted and in-memory session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.login.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err.Error())
		return err
	}
	a.setMode(ModeUnknown)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the active session, with the email partly masked.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.sctx.Session()
	if s == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "User: %s\n", s.UserID)
	if s.Email != "" {
		fmt.Fprintf(a.out, "Email: %s\n", maskEmail(s.Email))
	}
	return nil
}

// Ping checks backend reachability with an authenticated call and updates
// the connectivity mode.
func (a *App) Ping(ctx context.Context) error {
	body, err := a.apiCli.Ping(ctx)
	if err != nil {
		a.setMode(ModeOffline)
		fmt.Fprintln(a.out, "Backend unreachable:", err.Error())
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, body)
	return nil
}
