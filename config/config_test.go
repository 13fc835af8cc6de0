package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key NewConfig reads so the host environment does not
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_PATH",
		"LOG_MODE", "BCRYPT_COST", "OUTPUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, Database{
		Driver: DriverMySQL,
		Host:   "localhost",
		Port:   3306,
		Name:   DefaultDatabaseName,
		User:   "root",
		Path:   DefaultSQLitePath,
	}, cfg.Database)
	assert.Equal(t, "production", cfg.Log.Mode)
	assert.Equal(t, DefaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, "table", cfg.CLI.Output)
}

func TestNewConfigFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/libros.db")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("OUTPUT", "json")

	cfg, err := NewConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/libros.db", cfg.Database.Path)
	assert.Equal(t, 3307, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "json", cfg.CLI.Output)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", DriverMySQL)
	t.Setenv("OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("driver", "", "")
	flags.String("db-path", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--driver", "sqlite", "--db-path", "x.db"}))

	cfg, err := NewConfig(flags)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "x.db", cfg.Database.Path)
	assert.Equal(t, "json", cfg.CLI.Output, "unset flags fall back to the environment")
}

func TestNewConfigRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")
	_, err := NewConfig(nil)
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")

	clearEnv(t)
	t.Setenv("OUTPUT", "xml")
	_, err = NewConfig(nil)
	assert.ErrorContains(t, err, "unsupported output")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	loaded, err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	loaded, err = LoadEnvFile("")
	require.NoError(t, err)
	assert.False(t, loaded)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER=sqlite\nDB_NAME=club_test\n"), 0o600))
	t.Setenv("DB_NAME", "from_shell")

	loaded, err = LoadEnvFile(path)
	require.NoError(t, err)
	assert.True(t, loaded)

	cfg, err := NewConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "from_shell", cfg.Database.Name, "variables already set win")
}

func TestMaskedPassword(t *testing.T) {
	assert.Equal(t, "(empty)", Database{}.MaskedPassword())
	assert.Equal(t, "***", Database{Password: "ab"}.MaskedPassword())
	assert.Equal(t, "se***", Database{Password: "secret"}.MaskedPassword())
}
