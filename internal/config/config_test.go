package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DAYPLAN_ADDR", "DAYPLAN_DB_DRIVER", "DAYPLAN_DB_DSN", "DAYPLAN_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dayplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "dayplan.db", filepath.Base(cfg.DBDSN))
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingNamedFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "typo.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "read config")
}

func TestLoadDefaultMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, Default().Addr, cfg.Addr)
}

func TestLoadDefaultReadsFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".dayplan"), 0755))
	require.NoError(t, os.WriteFile(DefaultPath(), []byte("addr: \":9100\"\n"), 0644))

	cfg, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "addr: \":9000\"\nlog_level: debug\ndb_dsn: /tmp/file.db\n")

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Addr)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "/tmp/file.db", cfg.DBDSN)
		assert.Equal(t, "sqlite", cfg.DBDriver)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("DAYPLAN_ADDR", ":7000")
		t.Setenv("DAYPLAN_DB_DRIVER", "postgres")
		t.Setenv("DAYPLAN_DB_DSN", "postgres://localhost/dayplan")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.Addr)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, "postgres://localhost/dayplan", cfg.DBDSN)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "addr: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DBDriver = "mysql"
	assert.ErrorContains(t, cfg.Validate(), "db_driver")

	cfg = Default()
	cfg.Addr = ""
	assert.Error(t, cfg.Validate())
}
