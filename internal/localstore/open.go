// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package localstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/qrify/qrify/internal/logging"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Open returns the store selected by dbType. "memory" needs no dsn.
func Open(dbType, dsn string) (Store, error) {
	switch dbType {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported storage type: '%s'", dbType)
	}

	if dbType == "sqlite" && !isSqliteMemory(dsn) {
		if dir := filepath.Dir(sqlitePath(dsn)); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("could not create storage directory %s: %w", dir, err)
			}
		}
	}

	driverName := dbType
	// pgx registers itself as "pgx"
	if dbType == "postgres" {
		driverName = "pgx"
	}
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	configurePool(sqlDB, dbType, dsn)

	start := time.Now()
	if err := RunMigrations(sqlDB, dbType); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logging.Debugf("localstore: %s ready in %s", dbType, time.Since(start))

	return &BunStore{db: createBunDB(sqlDB, dbType), dbType: dbType}, nil
}

type poolSettings struct {
	maxOpen int
	// lifetime of zero keeps connections forever
	lifetime time.Duration
}

func configurePool(sqlDB *sql.DB, dbType, dsn string) {
	ps := poolSettingsFor(dbType, dsn)
	sqlDB.SetMaxOpenConns(ps.maxOpen)
	sqlDB.SetMaxIdleConns(ps.maxOpen)
	sqlDB.SetConnMaxLifetime(ps.lifetime)
}

func poolSettingsFor(dbType, dsn string) poolSettings {
	const (
		defaultMaxOpenConns    = 4
		defaultConnMaxLifetime = 5 * time.Minute
	)

	// every connection to ":memory:" sees its own database, so the single
	// connection must never be recycled
	if dbType == "sqlite" && isSqliteMemory(dsn) {
		return poolSettings{maxOpen: 1}
	}

	ps := poolSettings{maxOpen: defaultMaxOpenConns, lifetime: defaultConnMaxLifetime}
	if v := os.Getenv("QRIFY_STORAGE_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			ps.maxOpen = n
		}
	}
	return ps
}

func isSqliteMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory") || strings.HasPrefix(dsn, "file::memory:")
}

func sqlitePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}
