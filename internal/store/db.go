package store

import (
	"database/sql"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store wraps the SQLite database holding persisted visitor state (cart,
// wishlist, auth slots) and recorded orders.
type Store struct {
	DB *sql.DB

	watchers *watchRegistry
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Store{DB: db, watchers: newWatchRegistry()}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
