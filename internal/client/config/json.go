package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/eduroot/storefront/internal/flagx"
	"github.com/eduroot/storefront/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields leave
// the corresponding Config value untouched.
type JsonConfig struct {
	BackendURL               string         `json:"backend_url"`
	APIPath                  string         `json:"api_path"`
	RequestTimeout           timex.Duration `json:"request_timeout"`
	AutoLogoutOnUnauthorized *bool          `json:"auto_logout_on_unauthorized"`
	StoreDriver              string         `json:"store_driver"`
	StorePath                string         `json:"store_path"`
	RedisAddr                string         `json:"redis_addr"`
	StoreNamespace           string         `json:"store_namespace"`
	LogFormat                string         `json:"log_format"`
	Currency                 string         `json:"currency"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.BackendURL, jc.BackendURL)
	setString(&cfg.APIPath, jc.APIPath)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.AutoLogoutOnUnauthorized != nil {
		cfg.AutoLogoutOnUnauthorized = *jc.AutoLogoutOnUnauthorized
	}
	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.StorePath, jc.StorePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.StoreNamespace, jc.StoreNamespace)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.Currency, jc.Currency)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
