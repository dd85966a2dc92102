package config

import (
	"encoding/json"
	"os"

	"github.com/gymmi-app/gymmi/internal/flagx"
	"github.com/gymmi-app/gymmi/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Absent keys leave the
// runtime Config untouched.
type JsonConfig struct {
	ServerURL           string          `json:"server_url"`
	APIPrefix           string          `json:"api_prefix"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	LoginTimeout        *timex.Duration `json:"login_timeout"`
	UserAgent           string          `json:"user_agent"`
	InsecureSkipVerify  *bool           `json:"insecure_skip_verify"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DataDir             string          `json:"data_dir"`
	DatabaseFile        string          `json:"database_file"`
	StorePassphrase     string          `json:"store_passphrase"`
	InMemoryStore       *bool           `json:"in_memory_store"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseEnv -> parseJson -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.ServerURL, jc.ServerURL)
	setString(&cfg.APIPrefix, jc.APIPrefix)
	setString(&cfg.UserAgent, jc.UserAgent)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.DatabaseFile, jc.DatabaseFile)
	setString(&cfg.StorePassphrase, jc.StorePassphrase)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LoginTimeout != nil {
		cfg.LoginTimeout = jc.LoginTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.InsecureSkipVerify != nil {
		cfg.InsecureSkipVerify = *jc.InsecureSkipVerify
	}
	if jc.InMemoryStore != nil {
		cfg.InMemoryStore = *jc.InMemoryStore
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
