package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PARSEFILE_SEPARATOR", "PARSEFILE_FORMAT", "PARSEFILE_MODE",
	"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DB",
	"DB_CONNECT_TIMEOUT", "DB_QUERY_TIMEOUT", "SINK_CHUNK",
}

// isolate runs the test from an empty directory with the config keys unset.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ";", cfg.Separator)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "records", cfg.Mode)
	assert.Equal(t, "127.0.0.1", cfg.MySQLHost)
	assert.Equal(t, 3306, cfg.MySQLPort)
	assert.Equal(t, "parsefile", cfg.MySQLDB)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 2000, cfg.SinkChunk)
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PARSEFILE_SEPARATOR", ",")
	t.Setenv("PARSEFILE_FORMAT", "json")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("DB_QUERY_TIMEOUT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ",", cfg.Separator)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 3307, cfg.MySQLPort)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout, "bad ints fall back to the default")
}

func TestLoadKeepsEmptySeparator(t *testing.T) {
	isolate(t)
	t.Setenv("PARSEFILE_SEPARATOR", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Separator)
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("PARSEFILE_MODE=lines\nMYSQL_DB=inventory\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PARSEFILE_MODE")
		os.Unsetenv("MYSQL_DB")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "lines", cfg.Mode)
	assert.Equal(t, "inventory", cfg.MySQLDB)
}
