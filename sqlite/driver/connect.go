package driver

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shaunharker/SQLambda/sqlite"
)

// Connect opens the database at path through database/sql and verifies it
// with a ping. Every pooled connection is opened with opts. An in-memory
// database is private to one connection, so the pool is limited to one.
func Connect(path string, opts ...sqlite.Option) (*sqlx.DB, error) {
	db := sqlx.NewDb(sql.OpenDB(NewConnector(path, opts...)), driverName)
	if path == "" || path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlambda: connect %q: %w", path, err)
	}
	return db, nil
}
