package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, an email and a password and creates the
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	if _, err := a.authService.Register(ctx, name, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful! Please login.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	if u.EmailConfig != nil {
		fmt.Fprintf(a.out, "Reminders are sent from %s\n", u.EmailConfig.Email)
	} else {
		fmt.Fprintln(a.out, "Reminder email is not configured (see 'emailconfig')")
	}
	return nil
}

// EmailConfig asks for the sender address and its app password.
func (a *App) EmailConfig(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Sender email", a.out)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "App password (for Gmail: Google Account > Security > App passwords)")
	secret, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer clear(secret)

	if _, err := a.authService.SaveEmailConfig(ctx, models.EmailConfig{Email: email, AppPassword: string(secret)}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Email configuration saved.")
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	u, err := a.authService.RefreshSession(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Session refreshed for %s.\n", u.Email)
	return nil
}

func (a *App) currentUser(ctx context.Context) (*models.User, error) {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, common.ErrUnauthorized
	}
	return u, nil
}
