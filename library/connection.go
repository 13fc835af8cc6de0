package library

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"libros-circulares/config"
)

// Provider hands out one live connection per call. release must be called
// exactly once when the caller is done with the connection.
type Provider interface {
	Connect(ctx context.Context) (conn *sqlx.Conn, release func(), err error)
}

// DialProvider opens a brand-new database handle for every Connect and closes
// it on release. Nothing is shared between calls.
type DialProvider struct {
	cfg config.Database
	log *zap.Logger
}

// NewDialProvider returns a provider that dials per call.
func NewDialProvider(cfg config.Database, log *zap.Logger) *DialProvider {
	return &DialProvider{cfg: cfg, log: log}
}

func (p *DialProvider) Connect(ctx context.Context) (*sqlx.Conn, func(), error) {
	driver, dsn, err := dataSource(p.cfg)
	if err != nil {
		return nil, nil, p.unavailable(err)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, nil, p.unavailable(err)
	}
	conn, err := db.Connx(ctx)
	if err != nil {
		db.Close()
		return nil, nil, p.unavailable(err)
	}
	release := func() {
		conn.Close()
		db.Close()
	}
	return conn, release, nil
}

func (p *DialProvider) unavailable(err error) error {
	p.log.Error("could not connect to the database",
		zap.String("driver", p.cfg.Driver),
		zap.String("target", target(p.cfg)),
		zap.Error(err))
	return errors.Join(ErrConnectionUnavailable, err)
}

// dataSource turns the config into a registered driver name and its DSN.
func dataSource(cfg config.Database) (driver, dsn string, err error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		return "mysql", mysqlDSN(cfg), nil
	case config.DriverSQLite:
		return sqliteDriverName, sqliteDSN(cfg.Path), nil
	default:
		return "", "", fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

func mysqlDSN(cfg config.Database) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	// Report matched rows, so re-saving an unchanged value still counts as 1.
	mc.ClientFoundRows = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// sqliteDSN enables busy_timeout and foreign keys. Stored times are UTC;
// _loc=auto hands them back in the local zone.
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_loc=auto", path)
}

// ensureSQLiteDir creates the parent directory of the sqlite file so a first
// run against a fresh path succeeds.
func ensureSQLiteDir(cfg config.Database) error {
	if cfg.Driver != config.DriverSQLite {
		return nil
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	return nil
}

func target(cfg config.Database) string {
	if cfg.Driver == config.DriverSQLite {
		return cfg.Path
	}
	return fmt.Sprintf("%s@%s/%s", cfg.User, net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)), cfg.Name)
}
