package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/eduroot/storefront/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvBackendURL     = "BACKEND_URL"
	EnvAPIPath        = "EDUROOT_API_PATH"
	EnvRequestTimeout = "EDUROOT_REQUEST_TIMEOUT"
	EnvAutoLogout     = "EDUROOT_AUTO_LOGOUT"
	EnvStoreDriver    = "EDUROOT_STORE_DRIVER"
	EnvStorePath      = "EDUROOT_STORE_PATH"
	EnvRedisAddr      = "EDUROOT_REDIS_ADDR"
	EnvStoreNamespace = "EDUROOT_STORE_NAMESPACE"
	EnvLogFormat      = "EDUROOT_LOG_FORMAT"
	EnvCurrency       = "EDUROOT_CURRENCY"

	defaultEnvFile = ".env"
)

type lookupFunc func(key string) (string, bool)

// envLookup combines the process environment with a dotenv file. The file
// named by -e/-env must exist; ./.env is read only if present. Process
// variables take precedence over the file.
func envLookup(args []string, environ lookupFunc) (lookupFunc, error) {
	path := flagx.EnvFileFlag(args)
	required := path != ""
	if !required {
		path = defaultEnvFile
	}

	fileVals, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return environ, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := environ(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}, nil
}

// parseEnv overlays cfg with the variables lookup knows about.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		EnvBackendURL:     &cfg.BackendURL,
		EnvAPIPath:        &cfg.APIPath,
		EnvStoreDriver:    &cfg.StoreDriver,
		EnvStorePath:      &cfg.StorePath,
		EnvRedisAddr:      &cfg.RedisAddr,
		EnvStoreNamespace: &cfg.StoreNamespace,
		EnvLogFormat:      &cfg.LogFormat,
		EnvCurrency:       &cfg.Currency,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvAutoLogout); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoLogout, err)
		}
		cfg.AutoLogoutOnUnauthorized = b
	}
	return nil
}
