// Package database owns the connection to the SQLite file and hands out
// request-scoped units of work over it.
//
// Every read goes through Session(ctx); every write goes through WithTx, which
// commits when the callback returns nil and rolls back on error or panic. Callers
// never call Commit, Rollback or Close themselves.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/ghuser/itemstore/pkg/logger"
)

const (
	// MemoryPath opens a private in-process database.
	MemoryPath = ":memory:"

	busyTimeout        = 5 * time.Second
	slowQueryThreshold = 200 * time.Millisecond
)

// ErrDatabase marks failures raised by the storage engine itself (I/O, locks,
// constraint violations). Domain errors such as "not found" never carry it.
var ErrDatabase = errors.New("database error")

// Database wraps a *gorm.DB bound to a single SQLite file.
type Database struct {
	db  *gorm.DB
	log logger.Logger
}

// New opens (creating if needed) the SQLite database at path and verifies it
// with a ping. The GORM logger is bridged to log.
func New(ctx context.Context, path string, log logger.Logger) (*Database, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database: path must not be empty")
	}

	gdb, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:  newGormLogger(log, slowQueryThreshold),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", path, err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database: underlying sql.DB: %w", err)
	}
	if path == MemoryPath {
		// Each connection to :memory: is its own database.
		sqlDB.SetMaxOpenConns(1)
	}

	d := &Database{db: gdb, log: log}
	if err := d.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return d, nil
}

func dsn(path string) string {
	if path == MemoryPath {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		path, sep, busyTimeout.Milliseconds())
}

// AutoMigrate creates or extends the tables for the given models.
func (d *Database) AutoMigrate(ctx context.Context, models ...any) error {
	if err := d.db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return Wrap("auto-migrate", err)
	}
	return nil
}

// Session returns a fresh GORM session bound to ctx. Sessions share nothing
// across requests; state lives only in the database.
func (d *Database) Session(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx)
}

// WithTx runs fn inside a single transaction. The transaction commits if fn
// returns nil and is rolled back on every other exit path, including panics,
// which are re-raised after the rollback.
//
// Errors returned by fn are passed through untouched so domain sentinels
// survive; begin/commit failures are wrapped with ErrDatabase.
func (d *Database) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := d.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return Wrap("begin transaction", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.log.WarnContext(ctx, "database: rollback failed", "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return Wrap("commit transaction", err)
	}
	committed = true
	return nil
}

// Ping checks the database connection health.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("database: underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return Wrap("ping", err)
	}
	return nil
}

// Close releases every pooled connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("database: underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("database: close: %w", err)
	}
	return nil
}

// Wrap annotates an engine error with op and ErrDatabase.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrDatabase, err)
}
