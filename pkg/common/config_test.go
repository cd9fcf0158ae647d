package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "shikimori.one", cfg.Client.APIDomain)
	assert.Equal(t, 5, cfg.RateLimit.PerSecond)
	assert.Equal(t, 90, cfg.RateLimit.PerMinute)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, 30*time.Second, cfg.Client.GetTimeout())
}

func TestConfig_GetTimeout_Invalid(t *testing.T) {
	c := ClientConfig{Timeout: "soon"}
	if got := c.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout() = %v, want 30s fallback", got)
	}
	c.Timeout = "5s"
	if got := c.GetTimeout(); got != 5*time.Second {
		t.Errorf("GetTimeout() = %v, want 5s", got)
	}
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shiki.toml")
	data := `
environment = "test"

[client]
app_name = "Test App"
client_id = "cid"
client_secret = "secret"
scopes = "user_rates+comments"
auth_code = "abc123"

[rate_limit]
per_second = 3

[store]
driver = "redis"

[store.settings]
addr = "localhost:6379"
prefix = "shiki:test:"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	t.Setenv("SHIKI_CLIENT_CLIENT_SECRET", "from-env")
	t.Setenv("SHIKI_RATE_LIMIT_PER_MINUTE", "60")

	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"), path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "Test App", cfg.Client.AppName)
	assert.Equal(t, "cid", cfg.Client.ClientID)
	assert.Equal(t, "from-env", cfg.Client.ClientSecret)
	assert.Equal(t, "abc123", cfg.Client.AuthCode)
	assert.Equal(t, 3, cfg.RateLimit.PerSecond)
	assert.Equal(t, 60, cfg.RateLimit.PerMinute)
	assert.Equal(t, "shikimori.one", cfg.Client.APIDomain, "unset keys keep defaults")
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Store.Settings["addr"])
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[client\napp_name="), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_StoreDriverEnvOverride(t *testing.T) {
	t.Setenv("SHIKI_STORE_DRIVER", " Memory ")

	cfg := NewDefaultConfig()
	require.NoError(t, applyEnvOverrides(cfg))
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestConfig_ValidateRequired(t *testing.T) {
	tests := []struct {
		name    string
		client  ClientConfig
		missing []string
	}{
		{"empty", ClientConfig{}, []string{"client.app_name"}},
		{"restricted", ClientConfig{AppName: "App"}, nil},
		{"partial", ClientConfig{AppName: "App", ClientID: "id"}, []string{"client.client_secret", "client.scopes"}},
		{"complete", ClientConfig{AppName: "App", ClientID: "id", ClientSecret: "s", Scopes: "user_rates"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Client: tt.client}
			assert.Equal(t, tt.missing, cfg.ValidateRequired())
		})
	}
}

func TestLoadVersionFrom(t *testing.T) {
	oldVersion, oldBuild := Version, Build
	t.Cleanup(func() { Version, Build = oldVersion, oldBuild })
	Version, Build = "dev", "unknown"

	path := filepath.Join(t.TempDir(), ".version")
	require.NoError(t, os.WriteFile(path, []byte("# build info\nversion: 1.2.3\nbuild: 2026-10-01\n"), 0644))

	loadVersionFrom(path)
	assert.Equal(t, "1.2.3", GetVersion())
	assert.Equal(t, "2026-10-01", GetBuild())
}
