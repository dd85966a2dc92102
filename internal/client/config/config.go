package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Gymmi client.
//
// Units: every *Timeout and OnlineCheckInterval is a time.Duration.
type Config struct {
	ServerURL           string
	APIPrefix           string
	RequestTimeout      time.Duration
	LoginTimeout        time.Duration
	UserAgent           string
	InsecureSkipVerify  bool
	OnlineCheckInterval time.Duration

	DataDir         string
	DatabaseFile    string
	StorePassphrase string
	// InMemoryStore keeps the token for the lifetime of the process only.
	InMemoryStore bool

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.APIPrefix = "/api/v1"
	c.RequestTimeout = 60 * time.Second
	c.LoginTimeout = 30 * time.Second
	c.UserAgent = "Gymmi/1.0"
	c.InsecureSkipVerify = false
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = "gymmi"
	c.DatabaseFile = "gymmi.db"
	c.StorePassphrase = ""
	c.InMemoryStore = false
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// DatabasePath joins dataDir (already resolved) with DatabaseFile.
func (c *Config) DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, c.DatabaseFile)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional .env file), JSON (if present) and
// command-line flags (if present). Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
