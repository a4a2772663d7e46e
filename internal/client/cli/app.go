package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/eduroot/storefront/internal/client/client"
	"github.com/eduroot/storefront/internal/client/config"
	"github.com/eduroot/storefront/internal/client/models"
	"github.com/eduroot/storefront/internal/client/services"
	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	api      client.API
	store    store.Store
	provider *services.Provider

	reader *bufio.Reader
	out    io.Writer

	books   []models.Book
	pending *models.Order
	closers []func() error
}

// NewApp builds the application from cfg: logger, store, HTTP client and
// services. Diagnostics go to logOut; the REPL talks on stdin/stdout.
func NewApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(cfg.LogFormat, logOut)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings() {
		logger.Error(ctx, "configuration problem", "detail", w)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	httpClient := client.NewHTTPClient(client.Options{
		BaseURL:                  client.BaseURL(cfg.BackendURL, cfg.APIPath),
		Timeout:                  cfg.RequestTimeout,
		AutoLogoutOnUnauthorized: cfg.AutoLogoutOnUnauthorized,
	}, st, logger)

	a := newApp(cfg, logger, httpClient, st, os.Stdin, os.Stdout)

	httpClient.OnUnauthorized(func(ctx context.Context) {
		a.provider.Session.Invalidate(ctx, "backend rejected the token")
	})
	a.closers = append(a.closers, httpClient.Close)

	if z, ok := logger.(*logging.ZapLogger); ok {
		a.closers = append(a.closers, func() error {
			_ = z.Sync()
			return nil
		})
	}
	return a, nil
}

func newApp(cfg *config.Config, logger logging.Logger, api client.API, st store.Store, in io.Reader, out io.Writer) *App {
	return &App{
		config:   cfg,
		logger:   logger,
		api:      api,
		store:    st,
		provider: services.NewProvider(api, st, cfg.Currency, logger),
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run restores saved state and runs the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.provider.Init(ctx); err != nil {
		a.logger.Error(ctx, "startup restore incomplete", "error", err)
	}

	unsubscribe := a.provider.Session.Subscribe(func(s services.Session) {
		a.logger.Debug(ctx, "session changed", "state", s.State.String(), "language", s.Language.String())
	})
	defer unsubscribe()

	fmt.Fprintln(a.out, "Welcome to the EduRoot store (type 'help' for commands)")

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
	return nil
}

// Close releases the services, the store and the HTTP client.
func (a *App) Close() {
	if err := a.provider.Close(); err != nil {
		a.logger.Error(context.Background(), "closing services", "error", err)
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Error(context.Background(), "closing", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.provider.Session.Snapshot().Authenticated()
}

func (a *App) status() string {
	s := a.provider.Session.Snapshot()
	who := "guest"
	if s.Authenticated() {
		who = "signed in"
		if s.User != nil && s.User.Email != "" {
			who = s.User.Email
		}
	}
	return fmt.Sprintf("(%s %s cart:%d)", who, s.Language, a.provider.Cart.Count())
}
