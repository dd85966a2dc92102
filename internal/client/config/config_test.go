package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerURL)
	assert.Equal(t, "/api/v1", c.APIPrefix)
	assert.Equal(t, 60*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Second, c.LoginTimeout)
	assert.Equal(t, "Gymmi/1.0", c.UserAgent)
	assert.False(t, c.InsecureSkipVerify)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "gymmi", c.DataDir)
	assert.Equal(t, "gymmi.db", c.DatabaseFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"GYMMI_SERVER_URL=http://from-env:8000\nGYMMI_LOG_LEVEL=warn\nGYMMI_USER_AGENT=EnvAgent\n"), 0o600))
	jsonFile := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"server_url": "http://from-json:8000",
		"log_level":  "error",
	})

	os.Args = []string{"testbin", "-e", envFile, "-c", jsonFile, "-l", "debug"}

	cfg := LoadConfig()

	assert.Equal(t, "EnvAgent", cfg.UserAgent)
	assert.Equal(t, "http://from-json:8000", cfg.ServerURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_SubSecondIntervalFromEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv("GYMMI_ONLINE_CHECK_INTERVAL", "500ms")

	cfg := LoadConfig()

	assert.Equal(t, 500*time.Millisecond, cfg.OnlineCheckInterval)
}

func TestDatabasePath(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.Equal(t, filepath.Join("/tmp/x", "gymmi.db"), c.DatabasePath("/tmp/x"))
}
