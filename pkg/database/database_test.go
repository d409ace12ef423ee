package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/offers-api/pkg/config"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, `unsupported driver "oracle"`)
}

func TestOpenSQLiteInMemory(t *testing.T) {
	db, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.Equal(t, SQLiteDriver, db.DriverName())
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	db, err := Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: MemoryDSN})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var lowered string
	require.NoError(t, db.Get(&lowered, `SELECT LOWER(?)`, "ANÁLISE DE SISTEMAS"))
	assert.Equal(t, "análise de sistemas", lowered)

	var missing *string
	require.NoError(t, db.Get(&missing, `SELECT LOWER(NULL)`))
	assert.Nil(t, missing)
}

func TestPostgresDSN(t *testing.T) {
	dsn := postgresDSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "offers", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=offers sslmode=disable", dsn)
}
