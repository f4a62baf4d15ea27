package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "tasktree.db", cfg.DB.Path)
	require.Equal(t, 10, cfg.DB.MaxOpenConns)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TASKTREE_SERVER_HOST", "127.0.0.1")
	t.Setenv("TASKTREE_SERVER_PORT", "9090")
	t.Setenv("TASKTREE_DB_PATH", "/tmp/other.db")
	t.Setenv("TASKTREE_DB_MAX_OPEN_CONNS", "4")
	t.Setenv("TASKTREE_LOG_LEVEL", "debug")
	t.Setenv("TASKTREE_AUTH_ENABLED", "true")
	t.Setenv("TASKTREE_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "/tmp/other.db", cfg.DB.Path)
	require.Equal(t, 4, cfg.DB.MaxOpenConns)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  port: 7000
db:
  path: from-file.db
auth:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	t.Setenv("TASKTREE_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 7000, cfg.Server.Port)
	require.Equal(t, "from-file.db", cfg.DB.Path)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "0.0.0.0", cfg.Server.Host, "unset file keys keep defaults")
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o644))
	t.Setenv("TASKTREE_CONFIG_PATH", path)
	t.Setenv("TASKTREE_SERVER_PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7100, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("TASKTREE_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "TASKTREE_SERVER_PORT")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("TASKTREE_CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
}
