package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "https://gymmi.example", "-i", "10", "-l", "debug", "-k", "-m"},
			expected: &Config{
				ServerURL:           "https://gymmi.example",
				OnlineCheckInterval: 10 * time.Second,
				LogLevel:            "debug",
				InsecureSkipVerify:  true,
				InMemoryStore:       true,
			},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"cmd", "-c", "cfg.json", "-a", "http://x:1"},
			expected: &Config{ServerURL: "http://x:1"},
		},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_IntervalKeptWithoutFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd", "-l", "debug"}
	config := &Config{OnlineCheckInterval: 2500 * time.Millisecond}

	parseFlags(config)

	assert.Equal(t, 2500*time.Millisecond, config.OnlineCheckInterval)
	assert.Equal(t, "debug", config.LogLevel)
}
