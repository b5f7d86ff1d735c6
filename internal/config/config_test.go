package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory with no QUADRANT_* overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"QUADRANT_CONFIG", "QUADRANT_DB_PATH", "QUADRANT_ADDR", "QUADRANT_LOG_LEVEL", "QUADRANT_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := isolate(t)
	content := "db_path = \"/tmp/tasks.db\"\nlog_level = \"debug\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quadrant.toml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/tasks.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultAddr, cfg.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quadrant.toml"), []byte("addr = \":9000\"\n"), 0644))
	t.Setenv("QUADRANT_ADDR", ":9100")
	t.Setenv("QUADRANT_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	// godotenv never overrides variables that are already set
	require.NoError(t, os.Unsetenv("QUADRANT_DB_PATH"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("QUADRANT_DB_PATH=from-dotenv.db\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.DBPath)
}

func TestLoad_ExplicitConfigMustExist(t *testing.T) {
	isolate(t)
	t.Setenv("QUADRANT_CONFIG", "missing.toml")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadTOML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quadrant.toml"), []byte("addr = \n"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(c *Config)
	}{
		{"empty db", func(c *Config) { c.DBPath = "" }},
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
