package config

import (
	"os"
	"strconv"
	"time"

	"github.com/gymmi-app/gymmi/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envServerURL           = "GYMMI_SERVER_URL"
	envAPIPrefix           = "GYMMI_API_PREFIX"
	envRequestTimeout      = "GYMMI_REQUEST_TIMEOUT"
	envLoginTimeout        = "GYMMI_LOGIN_TIMEOUT"
	envUserAgent           = "GYMMI_USER_AGENT"
	envInsecureSkipVerify  = "GYMMI_INSECURE_SKIP_VERIFY"
	envOnlineCheckInterval = "GYMMI_ONLINE_CHECK_INTERVAL"
	envDataDir             = "GYMMI_DATA_DIR"
	envDatabaseFile        = "GYMMI_DATABASE_FILE"
	envStorePassphrase     = "GYMMI_STORE_PASSPHRASE"
	envInMemoryStore       = "GYMMI_IN_MEMORY_STORE"
	envLogLevel            = "GYMMI_LOG_LEVEL"
	envLogFormat           = "GYMMI_LOG_FORMAT"
)

var envKeys = []string{
	envServerURL, envAPIPrefix, envRequestTimeout, envLoginTimeout, envUserAgent,
	envInsecureSkipVerify, envOnlineCheckInterval, envDataDir, envDatabaseFile,
	envStorePassphrase, envInMemoryStore, envLogLevel, envLogFormat,
}

// parseEnv overlays Config with GYMMI_* variables.
//
// Lookup order:
//  1. A dotenv file given via -e or -env (flagx.EnvFileFlags), read with
//     godotenv without touching the process environment.
//  2. The process environment, which overrides the file.
//
// Panics on an unreadable file or malformed value, like parseJson.
func parseEnv(cfg *Config) {
	vars := map[string]string{}

	if path := flagx.EnvFileFlags(); path != "" {
		m, err := godotenv.Read(path)
		if err != nil {
			panic(err)
		}
		vars = m
	}

	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			vars[k] = v
		}
	}

	applyEnv(cfg, vars)
}

func applyEnv(cfg *Config, vars map[string]string) {
	str := func(key string, dst *string) {
		if v, ok := vars[key]; ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := vars[key]; ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				panic(err)
			}
			*dst = d
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := vars[key]; ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				panic(err)
			}
			*dst = b
		}
	}

	str(envServerURL, &cfg.ServerURL)
	str(envAPIPrefix, &cfg.APIPrefix)
	dur(envRequestTimeout, &cfg.RequestTimeout)
	dur(envLoginTimeout, &cfg.LoginTimeout)
	str(envUserAgent, &cfg.UserAgent)
	boolean(envInsecureSkipVerify, &cfg.InsecureSkipVerify)
	dur(envOnlineCheckInterval, &cfg.OnlineCheckInterval)
	str(envDataDir, &cfg.DataDir)
	str(envDatabaseFile, &cfg.DatabaseFile)
	str(envStorePassphrase, &cfg.StorePassphrase)
	boolean(envInMemoryStore, &cfg.InMemoryStore)
	str(envLogLevel, &cfg.LogLevel)
	str(envLogFormat, &cfg.LogFormat)
}
