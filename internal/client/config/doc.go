// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables. Values may also come from a dotenv file given
//     with -e or -env, or from ./.env when present; real environment
//     variables win over the file.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string        backend origin, e.g. http://localhost:8001
//	-t duration      request timeout (default 15s)
//	-s string        store driver: sqlite, memory or redis
//	-p string        SQLite database path
//	-r string        Redis address
//	-n string        store namespace (Redis key prefix)
//	-log string      log format: text, json or zap
//	-currency string order currency
//	-auto-logout     sign out automatically when the backend answers 401
//
// # Environment
//
//	BACKEND_URL               backend origin
//	EDUROOT_API_PATH          API path under the origin (default /api)
//	EDUROOT_REQUEST_TIMEOUT   Go duration string
//	EDUROOT_AUTO_LOGOUT       true/false
//	EDUROOT_STORE_DRIVER, EDUROOT_STORE_PATH, EDUROOT_REDIS_ADDR,
//	EDUROOT_STORE_NAMESPACE, EDUROOT_LOG_FORMAT, EDUROOT_CURRENCY
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "backend_url": "http://localhost:8001",
//	  "api_path": "/api",
//	  "request_timeout": "15s",
//	  "auto_logout_on_unauthorized": false,
//	  "store_driver": "sqlite",
//	  "store_path": "eduroot.db",
//	  "redis_addr": "localhost:6379",
//	  "store_namespace": "default",
//	  "log_format": "text",
//	  "currency": "INR"
//	}
package config
