package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/eduroot/storefront/internal/client/models"
	"github.com/eduroot/storefront/internal/client/services"
	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/common"
)

// Register prompts for name, email and password and creates an account.
// The new account starts signed in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	if err := a.provider.Session.Register(ctx, name, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you are signed in.")
	return nil
}

// Login prompts for email and password.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.Wipe(password)

	if err := a.provider.Session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout forgets the session on this device. The cart is kept.
func (a *App) Logout(ctx context.Context) error {
	a.pending = nil
	if err := a.provider.Session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the signed-in user and when the token expires.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.provider.Session.Snapshot()
	if !s.Authenticated() {
		return services.ErrNotAuthenticated
	}

	if s.User != nil {
		fmt.Fprintf(a.out, "%s <%s>\n", s.User.Name, s.User.Email)
		if s.User.Role != "" {
			fmt.Fprintf(a.out, "role: %s\n", s.User.Role)
		}
	} else {
		fmt.Fprintln(a.out, "signed in (the server did not send profile details)")
	}
	fmt.Fprintf(a.out, "language: %s\n", s.Language)

	token, ok, err := a.store.Get(ctx, store.KeyToken)
	if err != nil {
		return err
	}
	if ok {
		if exp, known := services.TokenExpiry(token); known {
			fmt.Fprintf(a.out, "session expires: %s (in %s)\n",
				exp.Local().Format(time.RFC1123), time.Until(exp).Round(time.Minute))
		}
	}
	return nil
}

// Language toggles the UI language, or sets it when given "en" or "hi".
func (a *App) Language(ctx context.Context, args []string) error {
	var (
		lang models.Language
		err  error
	)
	switch len(args) {
	case 0:
		lang, err = a.provider.Session.ToggleLanguage(ctx)
	case 1:
		l, ok := models.ParseLanguage(args[0])
		if !ok {
			return usage("lang [en|hi]")
		}
		lang, err = l, a.provider.Session.SetLanguage(ctx, l)
	default:
		return usage("lang [en|hi]")
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Language: %s\n", lang)
	return nil
}

// Reset wipes everything stored on this device and starts over.
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This signs you out and empties the cart. Type 'yes' to continue", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear local data: %w", err)
	}
	a.pending = nil
	a.books = nil
	if err := a.provider.Init(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Local data cleared")
	return nil
}
