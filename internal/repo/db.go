// Package repo implements the persistence gateway: thin, context-aware CRUD
// functions over GORM for every domain entity, plus database bootstrapping.
//
// The gateway owns the translation between in-memory localized records and
// the flat per-language wire columns; that mapping lives on the domain
// structs (embedded LocalizedText fields) so the repo functions stay pure
// query composition. Business rules belong to the services layer; the one
// exception is row-level invariants (seat capacity, status transitions),
// which are upheld here with conditional writes so concurrent callers
// cannot race past a stale read.
//
// Error semantics:
//   - A missing record yields gorm.ErrRecordNotFound (aliased as ErrNotFound).
//   - A guarded write whose row exists but no longer satisfies the guard
//     yields ErrStatusConflict or ErrCapacityConflict.
//   - Other DB errors propagate raw; services wrap them into their own
//     taxonomy before they reach a caller.
package repo

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/phytolife/go-phyto-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistent errors.Is checks
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrStatusConflict is returned by guarded writes when the row exists but
// its status is no longer the one the caller expected.
var ErrStatusConflict = errors.New("status conflict")

// ErrCapacityConflict is returned when a capacity change would put
// max_participants below the booked seat count.
var ErrCapacityConflict = errors.New("capacity below booked seats")

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// The pure-Go driver keeps the binary cgo-free.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist instead of getting an
	// opaque sqlite error at first write.
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// OpenPostgres connects to a Postgres instance using the given DSN.
// Used in deployments where the catalog outgrows a single SQLite file.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// EnableTracing attaches the GORM OpenTelemetry plugin so every query shows
// up as a span under the request trace. Called from main when tracing is on.
func EnableTracing(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates the schema for every persisted entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Profile{},
		&domain.Session{},
		&domain.BlogPost{},
		&domain.DietProgram{},
		&domain.LiveClass{},
		&domain.Purchase{},
		&domain.Ticket{},
		&domain.SupportTicket{},
		&domain.ChatMessage{},
	)
}
