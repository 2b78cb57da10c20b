package postgres

import (
	"errors"
	"fmt"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/feed?sslmode=disable", migrateURL("postgres://u:p@localhost:5432/feed?sslmode=disable"))
	assert.Equal(t, "pgx5://localhost/feed", migrateURL("postgresql://localhost/feed"))
	assert.Equal(t, "pgx5://localhost/feed", migrateURL("pgx5://localhost/feed"))
}

func TestDB_ErrorCode(t *testing.T) {
	db := &DB{}
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})

	assert.Equal(t, pgerrcode.UniqueViolation, db.ErrorCode(err))
	assert.Equal(t, "", db.ErrorCode(errors.New("plain")))
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
