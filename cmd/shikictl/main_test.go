package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shiki.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	env := filepath.Join(t.TempDir(), "missing.env")
	err := run(context.Background(), append([]string{"-env", env}, args...), &out)
	return out.String(), err
}

func TestRun_Version(t *testing.T) {
	path := writeConfig(t, `
[client]
app_name = "TestApp"
`)
	out, err := runCLI(t, "-config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "TestApp")
	assert.Contains(t, out, "restricted")
}

func TestRun_AuthURLBeforeAuthCode(t *testing.T) {
	path := writeConfig(t, `
[client]
app_name = "TestApp"
client_id = "id"
client_secret = "secret"
scopes = "user_rates comments"

[store]
driver = "null"
`)
	out, err := runCLI(t, "-config", path, "auth-url")
	require.NoError(t, err)
	assert.Contains(t, out, "https://shikimori.one/oauth/authorize?")
	assert.Contains(t, out, "client_id=id")
}

func TestRun_AuthURLRestricted(t *testing.T) {
	path := writeConfig(t, `
[client]
app_name = "TestApp"

[store]
driver = "memory"

[logging]
level = "disabled"
`)
	_, err := runCLI(t, "-config", path, "auth-url")
	assert.ErrorContains(t, err, "restricted")
}

func TestRun_DotenvSuppliesConfig(t *testing.T) {
	path := writeConfig(t, `
[store]
driver = "null"
`)
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte(
		"SHIKI_CLIENT_APP_NAME=DotenvApp\nSHIKI_CLIENT_CLIENT_ID=id\nSHIKI_CLIENT_CLIENT_SECRET=secret\nSHIKI_CLIENT_SCOPES=comments\n"), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"SHIKI_CLIENT_APP_NAME", "SHIKI_CLIENT_CLIENT_ID", "SHIKI_CLIENT_CLIENT_SECRET", "SHIKI_CLIENT_SCOPES"} {
			os.Unsetenv(k)
		}
	})

	var out bytes.Buffer
	err := run(context.Background(), []string{"-env", env, "-config", path, "auth-url"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "scope=comments")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "no command given"},
		{"unknown command", []string{"frobnicate"}, `unknown command "frobnicate"`},
		{"anime without id", []string{"anime"}, "usage: shikictl anime <id>"},
		{"anime bad id", []string{"anime", "bebop"}, `invalid anime id "bebop"`},
		{"search without query", []string{"search", "-limit", "3"}, "usage: shikictl search"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
