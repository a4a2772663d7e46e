package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"
)

const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

var (
	drivers    = []string{DriverSQLite, DriverMemory, DriverRedis}
	logFormats = []string{"text", "json", "zap"}
)

// Config holds runtime settings for the storefront CLI.
type Config struct {
	// BackendURL is the backend origin. Empty is allowed but every request
	// will then fail; see Warnings.
	BackendURL     string
	APIPath        string
	RequestTimeout time.Duration
	// AutoLogoutOnUnauthorized ends the session on any 401 reply. Off by
	// default: 401s are only logged.
	AutoLogoutOnUnauthorized bool

	StoreDriver    string
	StorePath      string
	RedisAddr      string
	StoreNamespace string

	LogFormat string
	Currency  string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = ""
	c.APIPath = "/api"
	c.RequestTimeout = 15 * time.Second
	c.AutoLogoutOnUnauthorized = false
	c.StoreDriver = DriverSQLite
	c.StorePath = "eduroot.db"
	c.RedisAddr = "localhost:6379"
	c.StoreNamespace = "default"
	c.LogFormat = "text"
	c.Currency = "INR"
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and the flags in args (usually os.Args[1:]), later sources overriding
// earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}

	lookup, err := envLookup(args, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(drivers, c.StoreDriver) {
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.StoreDriver))
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	if c.StoreDriver == DriverSQLite && c.StorePath == "" {
		errs = append(errs, errors.New("sqlite store needs a path"))
	}
	if c.StoreDriver == DriverRedis && c.RedisAddr == "" {
		errs = append(errs, errors.New("redis store needs an address"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Warnings lists settings that let the client start but will make it
// misbehave.
func (c *Config) Warnings() []string {
	var w []string
	if c.BackendURL == "" {
		w = append(w, "backend URL is not set (BACKEND_URL or -a); requests use a relative /api path and will fail")
	}
	return w
}
