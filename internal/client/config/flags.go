package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/eduroot/storefront/internal/flagx"
)

// parseFlags overlays cfg with command-line flags. args are filtered down to
// the flags owned here first, so -c/-e and unknown flags are ignored.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, flagx.Allowed{
		Valued: []string{"a", "t", "s", "p", "r", "n", "log", "currency"},
		Bool:   []string{"auto-logout"},
	})

	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend origin")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver: sqlite, memory or redis")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "SQLite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.StoreNamespace, "n", cfg.StoreNamespace, "store namespace")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "order currency")
	fs.BoolVar(&cfg.AutoLogoutOnUnauthorized, "auto-logout", cfg.AutoLogoutOnUnauthorized, "sign out on 401 replies")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
