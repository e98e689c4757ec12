package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// unset removes an env var for the test while still restoring it afterwards.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoad_MissingAPIKeyIsFatal(t *testing.T) {
	unset(t, "BEEMINDER_API_KEY")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "BEEMINDER_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BEEMINDER_API_KEY", "token")
	unset(t, "BEEMINDER_API_URL")
	unset(t, "EDITOR")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "token", cfg.APIKey)
	require.Equal(t, "https://www.beeminder.com/api/v1", cfg.APIURL)
	require.Equal(t, "nvim", cfg.Editor)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BEEMINDER_API_KEY", "token")
	t.Setenv("BEEMINDER_API_URL", "http://127.0.0.1:8080/api/v1")
	t.Setenv("EDITOR", "nano")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8080/api/v1", cfg.APIURL)
	require.Equal(t, "nano", cfg.Editor)
}
