// Package mockdb opens a gorm postgres session over go-sqlmock for the
// repository tests. The session is configured like the production one:
// no implicit transaction per write and translated driver errors.
package mockdb

import (
	"database/sql/driver"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New returns a gorm session backed by a fresh sqlmock connection.
func New(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       conn,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true, TranslateError: true})
	require.NoError(t, err)
	return db, mock
}

// UniqueViolation is the error postgres returns when a unique index rejects
// a row.
func UniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// JSON matches a query argument holding the JSON encoding of want.
type JSON struct {
	Want map[string]string
}

// Match implements sqlmock.Argument.
func (j JSON) Match(v driver.Value) bool {
	var raw []byte
	switch b := v.(type) {
	case string:
		raw = []byte(b)
	case []byte:
		raw = b
	default:
		return false
	}
	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		return false
	}
	if len(got) != len(j.Want) {
		return false
	}
	for k, v := range j.Want {
		if got[k] != v {
			return false
		}
	}
	return true
}
