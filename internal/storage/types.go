package storage

import (
	"database/sql"
	"sync"
)

// store handles all key-value persistence against SQLite.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
