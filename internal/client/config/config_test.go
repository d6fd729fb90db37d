package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty directory so no stray .env is read.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, DriverSQLite, c.StorageDriver)
	assert.Equal(t, "invoicer.db", c.DatabasePath)
	assert.Equal(t, "exports", c.ExportDir)
	assert.Equal(t, 20, c.RowsPerPage)
	assert.Equal(t, MailLog, c.MailProvider)
	assert.Equal(t, "smtp.gmail.com:587", c.SMTPAddr)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_DefaultsWithoutArgs(t *testing.T) {
	inTempDir(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := inTempDir(t)

	jsonPath := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
		"storage_driver": "redis",
		"database_path": "from-json.db",
		"export_dir": "json-exports",
		"rows_per_page": 5
	}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INVOICER_DATABASE_PATH=from-env.db\nINVOICER_EXPORT_DIR=env-exports\n"), 0o600))
	t.Setenv("INVOICER_ROWS_PER_PAGE", "7")

	cfg, err := LoadConfig([]string{"-c", jsonPath, "-export-dir", "flag-exports"})
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.StorageDriver, "json over defaults")
	assert.Equal(t, "from-env.db", cfg.DatabasePath, ".env over json")
	assert.Equal(t, 7, cfg.RowsPerPage, "process env over json")
	assert.Equal(t, "flag-exports", cfg.ExportDir, "flags over everything")
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := inTempDir(t)

	_, err := LoadConfig([]string{"-c", filepath.Join(dir, "missing.json")})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-driver", "postgres"})
	require.ErrorContains(t, err, "unknown storage driver")

	_, err = LoadConfig([]string{"-mail", "resend"})
	require.ErrorContains(t, err, "resend api key")

	_, err = LoadConfig([]string{"-rows", "0"})
	require.ErrorContains(t, err, "rows per page")

	_, err = LoadConfig([]string{"-no-such-flag"})
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"memory driver", func(c *Config) { c.StorageDriver = DriverMemory }, false},
		{"smtp", func(c *Config) { c.MailProvider = MailSMTP }, false},
		{"resend with key", func(c *Config) { c.MailProvider = MailResend; c.ResendAPIKey = "re_123" }, false},
		{"unknown mail", func(c *Config) { c.MailProvider = "pigeon" }, true},
		{"negative rows", func(c *Config) { c.RowsPerPage = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.wantErr {
				require.Error(t, c.Validate())
			} else {
				require.NoError(t, c.Validate())
			}
		})
	}
}
