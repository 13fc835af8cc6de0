package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type (
	Config struct {
		Database
		Log
		Auth
		CLI
	}

	// Database holds everything the connection provider needs. It is passed
	// explicitly; nothing in the process reads it globally.
	Database struct {
		Driver   string
		Host     string
		Port     int
		Name     string
		User     string
		Password string
		Path     string // sqlite file, ignored for mysql
	}
	Log struct {
		Mode string // "debug" or "production"
	}
	Auth struct {
		BcryptCost int
	}
	CLI struct {
		Output string // "table" or "json"
	}
)

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment.
// A missing file is not an error; variables already set win.
func LoadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// NewConfig resolves configuration from the environment and, when given, the
// command-line flags. Flags override environment values.
func NewConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("db_driver", DriverMySQL)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 3306)
	v.SetDefault("db_name", DefaultDatabaseName)
	v.SetDefault("db_user", "root")
	v.SetDefault("db_password", "")
	v.SetDefault("db_path", DefaultSQLitePath)
	v.SetDefault("log_mode", "production")
	v.SetDefault("bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("output", "table")

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Database: Database{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Path:     v.GetString("DB_PATH"),
		},
		Log: Log{
			Mode: v.GetString("LOG_MODE"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		CLI: CLI{
			Output: strings.ToLower(v.GetString("OUTPUT")),
		},
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", cfg.Database.Driver, DriverMySQL, DriverSQLite)
	}
	switch cfg.CLI.Output {
	case "table", "json":
	default:
		return nil, fmt.Errorf("unsupported output %q (want table or json)", cfg.CLI.Output)
	}
	return cfg, nil
}

// flagKeys maps viper keys to the cobra flag names that may override them.
var flagKeys = map[string]string{
	"db_driver": "driver",
	"db_path":   "db-path",
	"log_mode":  "log-mode",
	"output":    "output",
}

// MaskedPassword returns the password safe for logging.
func (d Database) MaskedPassword() string {
	switch {
	case d.Password == "":
		return "(empty)"
	case len(d.Password) <= 2:
		return "***"
	default:
		return d.Password[:2] + "***"
	}
}
