// Copyright (c) 2026 QuietWire
// SecureTalk - end-to-end encrypted messaging client
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for SecureTalk.
// It abstracts the underlying database (e.g., SQLite, PostgreSQL) behind a
// consistent interface, allowing the rest of the application to interact with
// the database in a uniform way.
package db // import "github.com/quietwire/securetalk/internal/db"

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	// SQL drivers required for integration tests and runtime.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// package-level variables
var (
	store Store
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// InitDB initializes the database connection based on the provided type and
// DSN. It sets the package-level store and creates any missing tables.
func InitDB(dbType, dsn string) error {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	store = s
	return nil
}

// IsInitialized reports whether the package-level store has been set.
func IsInitialized() bool {
	return store != nil
}

// GetStore returns the package-level store. Callers that want dependency
// injection should accept a Store instead.
func GetStore() Store {
	return store
}

// NewStoreFromDSN opens a database connection for the given backend type and
// returns a Store backed by it. Supported types: sqlite, mysql, postgres.
func NewStoreFromDSN(dbType, dsn string) (Store, error) {
	var bdb *bun.DB

	switch dbType {
	case "sqlite":
		sqldb, err := sqlOpenFunc("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// modernc sqlite misbehaves with concurrent writers on one file.
		sqldb.SetMaxOpenConns(1)
		bdb = bun.NewDB(sqldb, sqlitedialect.New())
	case "mysql":
		sqldb, err := sqlOpenFunc("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open mysql database: %w", err)
		}
		bdb = bun.NewDB(sqldb, mysqldialect.New())
	case "postgres":
		sqldb, err := sqlOpenFunc("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		bdb = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("unsupported database type: %q", dbType)
	}

	s := newBunStore(bdb)
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}
