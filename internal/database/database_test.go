package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	// Check if the 'kv_entries' table was created
	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv_entries'").Scan(&tableName)
	require.NoError(t, err, "Querying for kv_entries table should not produce an error")
	assert.Equal(t, "kv_entries", tableName, "The 'kv_entries' table should be created")
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	// Running migrations again against the same handle must be a no-op.
	err = migrate(db, "../../migrations")
	require.NoError(t, err)
}
