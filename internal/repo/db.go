// Package repo implements the data access layer, backed by GORM. This file
// contains the per-request database connector for MySQL, Postgres and SQLite
// (pure Go driver).
//
// There is no shared pool: every call to Open dials a fresh connection and
// the caller must release it with Close on every exit path. Failures to dial
// or ping are returned tagged as domain.KindDBConnection.
package repo

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	mysqldrv "github.com/go-sql-driver/mysql"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-fault-demo/internal/config"
	"github.com/tbourn/go-fault-demo/internal/domain"
)

// Connector opens short-lived connections from an immutable DBConfig.
// It is safe for concurrent use; it holds no connections itself.
type Connector struct {
	cfg config.DBConfig
}

// NewConnector returns a Connector bound to cfg.
func NewConnector(cfg config.DBConfig) *Connector {
	return &Connector{cfg: cfg}
}

// Open dials the configured host.
func (c *Connector) Open(ctx context.Context) (*gorm.DB, error) {
	return c.OpenHost(ctx, c.cfg.Host)
}

// OpenHost dials host instead of the configured one, keeping every other
// setting. For SQLite the host is the directory holding the database file.
func (c *Connector) OpenHost(ctx context.Context, host string) (*gorm.DB, error) {
	op := "connect " + c.cfg.Driver + " " + host

	var (
		db  *gorm.DB
		err error
	)
	switch c.cfg.Driver {
	case config.DriverSQLite:
		path := c.cfg.Path
		if host != c.cfg.Host {
			path = filepath.Join(host, filepath.Base(c.cfg.Path))
		}
		db, err = OpenSQLite(path)
	case config.DriverPostgres:
		db, err = gorm.Open(postgres.Open(PostgresDSN(c.cfg, host)), gormConfig())
	case config.DriverMySQL:
		db, err = gorm.Open(mysql.Open(MySQLDSN(c.cfg, host)), gormConfig())
	default:
		err = fmt.Errorf("unsupported driver %q", c.cfg.Driver)
	}
	if err != nil {
		return nil, domain.E(domain.KindDBConnection, domain.ReasonNone, op, err)
	}

	// One connection per request.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, domain.E(domain.KindDBConnection, domain.ReasonNone, op, err)
		}
	}

	if c.cfg.Tracing {
		if err := installTracing(db, op); err != nil {
			_ = Close(db)
			return nil, err
		}
	}
	return db.WithContext(ctx), nil
}

// installTracing registers the GORM OpenTelemetry plugin on db. A failure
// leaves the connection unusable for the route, so it is a connection error.
func installTracing(db *gorm.DB, op string) error {
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return domain.E(domain.KindDBConnection, domain.ReasonNone, op, err)
	}
	return nil
}

// Close releases a connection returned by Open or OpenHost.
func (c *Connector) Close(db *gorm.DB) error { return Close(db) }

// Close releases the connection behind db. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MySQLDSN builds a go-sql-driver DSN for host.
func MySQLDSN(cfg config.DBConfig, host string) string {
	mc := mysqldrv.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Pass
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// PostgresDSN builds a postgres:// URL for host.
func PostgresDSN(cfg config.DBConfig, host string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Pass),
		Host:     net.JoinHostPort(host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// OpenSQLite opens (or creates) a SQLite database file and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	return db, nil
}

// AutoMigrate creates the users table. The service never migrates a real
// database; this exists for local SQLite setups and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{})
}

// gormConfig keeps GORM quiet; failures are logged once by the HTTP layer.
func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
}
