package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eduroot/storefront/internal/client/client"
	"github.com/eduroot/storefront/internal/client/services"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Language(ctx context.Context, args []string) error
	Books(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Quantity(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) error
	Confirm(ctx context.Context, args []string) error
	Reset(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: books, add <id>, remove <id>, qty <id> <n>, cart, clear, lang [en|hi], register, login, reset, exit"
	helpMember = "Available commands: books, add <id>, remove <id>, qty <id> <n>, cart, clear, checkout, confirm [order] <payment>, lang [en|hi], whoami, logout, reset, exit"
)

// runREPL reads commands line by line from scanner and dispatches them to a.
// It returns on EOF or on "exit"/"quit". A failing command prints its error
// and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("eduroot %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "lang":
			err = a.Language(ctx, args)

		case "books", "ls":
			err = a.Books(ctx)
		case "add":
			err = a.Add(ctx, args)
		case "remove", "rm":
			err = a.Remove(ctx, args)
		case "qty":
			err = a.Quantity(ctx, args)
		case "cart":
			err = a.ShowCart(ctx)
		case "clear":
			err = a.ClearCart(ctx)

		case "checkout":
			err = a.Checkout(ctx)
		case "confirm":
			err = a.Confirm(ctx, args)

		case "reset":
			err = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}

var errUsage = errors.New("usage")

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// describeError turns an error into a line for the user.
func describeError(err error) string {
	var rerr *client.ResponseError
	switch {
	case errors.Is(err, errUsage):
		return strings.TrimPrefix(err.Error(), errUsage.Error()+": ")
	case errors.Is(err, client.ErrUnavailable):
		return "the store server is unreachable, try again later"
	case errors.Is(err, services.ErrNotAuthenticated):
		return "please login first"
	case errors.Is(err, services.ErrEmptyCart):
		return "your cart is empty"
	case errors.Is(err, services.ErrMissingToken):
		return "the server did not return a session token"
	case errors.As(err, &rerr):
		if d := rerr.Detail(); d != "" {
			return d
		}
		return rerr.Error()
	default:
		return err.Error()
	}
}
