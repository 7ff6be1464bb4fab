package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashbar-dev/flashbar/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flashbar-test.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "Messages", cfg.Server.PageTitle)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 60*time.Second, cfg.Session.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Session.HeartbeatInterval)
	assert.Equal(t, 5*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, int64(64*1024), cfg.Session.MaxMessageSize)
	assert.Equal(t, 256, cfg.Session.MaxEventQueue)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := LoadWithFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, errors.New("F080"))
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"debug": true,
		"server": {"address": ":9090", "page_title": "Status"},
		"session": {"read_timeout": "2m", "heartbeat_interval": "45s"},
		"i18n": {"catalog_file": "catalog.json", "locale": "de"}
	}`)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "Status", cfg.Server.PageTitle)
	assert.Equal(t, 2*time.Minute, cfg.Session.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.Session.HeartbeatInterval)
	assert.Equal(t, "catalog.json", cfg.I18n.CatalogFile)
	assert.Equal(t, "de", cfg.I18n.Locale)
	// Untouched keys keep their defaults.
	assert.Equal(t, "10s", cfg.Server.ShutdownTimeout.String())
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, `{"server": `)
	_, err := LoadWithFile(path)
	assert.ErrorIs(t, err, errors.New("F080"))
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `{"server": {"adress": ":9090"}}`)
	_, err := LoadWithFile(path)
	assert.ErrorIs(t, err, errors.New("F080"))
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"server": {"address": ":9090"}}`)
	t.Setenv("FLASHBAR_SERVER__ADDRESS", ":7070")
	t.Setenv("FLASHBAR_SESSION__MAX_EVENT_QUEUE", "512")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, 512, cfg.Session.MaxEventQueue)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		code    string
		subject string
	}{
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Log.Level = "verbose" },
			code:   "F081", subject: "log.level",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Log.Format = "xml" },
			code:   "F081", subject: "log.format",
		},
		{
			name:   "empty address",
			mutate: func(c *Config) { c.Server.Address = "" },
			code:   "F081", subject: "server.address",
		},
		{
			name:   "address without port",
			mutate: func(c *Config) { c.Server.Address = "localhost" },
			code:   "F081", subject: "server.address",
		},
		{
			name:   "port out of range",
			mutate: func(c *Config) { c.Server.Address = ":70000" },
			code:   "F082",
		},
		{
			name:   "non-numeric port",
			mutate: func(c *Config) { c.Server.Address = ":http" },
			code:   "F082",
		},
		{
			name:   "tiny message size",
			mutate: func(c *Config) { c.Session.MaxMessageSize = 16 },
			code:   "F081", subject: "session.max_message_size",
		},
		{
			name:   "zero event queue",
			mutate: func(c *Config) { c.Session.MaxEventQueue = 0 },
			code:   "F081", subject: "session.max_event_queue",
		},
		{
			name: "heartbeat slower than read timeout",
			mutate: func(c *Config) {
				c.Session.ReadTimeout = 10 * time.Second
				c.Session.HeartbeatInterval = 30 * time.Second
			},
			code: "F081", subject: "session.heartbeat_interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.New(tt.code))
			if tt.subject != "" {
				assert.Contains(t, err.Error(), tt.subject)
			}
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})
}
