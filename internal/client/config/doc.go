// Package config loads runtime configuration for the Gymmi client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. GYMMI_* environment variables, optionally read from a dotenv file
//     selected with -e or -env (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-i int      online status check interval (seconds)
//	-k          skip TLS certificate verification
//	-l string   log level
//	-m          in-memory token store
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://gymmi.example.com",
//	  "api_prefix": "/api/v1",
//	  "request_timeout": "60s",
//	  "login_timeout": "30s",
//	  "online_check_interval": "3s",
//	  "insecure_skip_verify": false,
//	  "data_dir": "gymmi",
//	  "log_level": "debug"
//	}
//
// Security: insecure_skip_verify (-k, GYMMI_INSECURE_SKIP_VERIFY) makes the
// client accept any server certificate. Use it only against development
// backends with self-signed certificates.
package config
