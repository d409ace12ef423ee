package database

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"

	"github.com/noah-isme/offers-api/pkg/config"
)

// SQLiteDriver is the database/sql driver name registered by modernc.org/sqlite.
const SQLiteDriver = "sqlite"

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

func init() {
	sqlx.BindDriver(SQLiteDriver, sqlx.QUESTION)

	// SQLite's built-in lower() only folds ASCII. Replacing it keeps
	// case-insensitive filters on accented text in line with PostgreSQL.
	if err := sqlite.RegisterDeterministicScalarFunction("lower", 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("database: register sqlite lower: %v", err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// openSQLite opens an embedded database at cfg.SQLitePath. An empty path or
// ":memory:" yields an in-memory database bound to one connection, since
// every new connection would otherwise see an empty database.
func openSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	path := strings.TrimSpace(cfg.SQLitePath)
	if path == "" {
		path = MemoryDSN
	}

	db, err := sqlx.Open(SQLiteDriver, path)
	if err != nil {
		return nil, err
	}

	if path == MemoryDSN {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}
