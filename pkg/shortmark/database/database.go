package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikepea/shortmark/pkg/shortmark/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DriverSQLite selects the embedded SQLite backend
	DriverSQLite = "sqlite"
	// DriverPostgres selects a PostgreSQL server
	DriverPostgres = "postgres"
)

// Options configures the database connection
type Options struct {
	Driver        string
	DSN           string
	MaxOpenConns  int
	SlowThreshold time.Duration
	LogQueries    bool
}

// Open connects to the configured database and returns the handle that is
// passed to every component. Callers own the handle and must Close it.
func Open(opts Options, log *zap.Logger) (*gorm.DB, error) {
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}

	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if opts.LogQueries {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(zap.NewStdLog(log.Named("gorm")), gormlogger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}

	switch opts.Driver {
	case DriverSQLite:
		// SQLite serializes writers; one connection avoids SQLITE_BUSY and
		// keeps in-memory databases from being split across connections.
		sqlDB.SetMaxOpenConns(1)
	default:
		if opts.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		}
	}

	log.Info("database connected", zap.String("driver", opts.Driver))
	return db, nil
}

// OpenAndMigrate opens the database and runs schema migrations
func OpenAndMigrate(opts Options, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(opts, log)
	if err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(db); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case DriverSQLite:
		return sqlite.Open(withForeignKeys(opts.DSN)), nil
	case DriverPostgres:
		return postgres.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// withForeignKeys turns on foreign key enforcement, which SQLite leaves off
// by default.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
