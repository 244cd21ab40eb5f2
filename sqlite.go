package orm

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gopsql/db"
	"github.com/gopsql/standard"

	_ "modernc.org/sqlite"
)

const (
	// DriverName is the database/sql driver name of modernc.org/sqlite.
	DriverName = "sqlite"
)

// Open opens a SQLite database and returns it as a db.DB for NewModel. The
// DSN is passed to modernc.org/sqlite, for example:
//
//	"people.db"
//	"file:people.db?_pragma=busy_timeout(5000)"
//	":memory:"
//
// Foreign keys are enabled. In-memory databases are limited to one
// connection, otherwise every pooled connection would see its own database.
func Open(dsn string) (db.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}
	c, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if isMemoryDSN(dsn) {
		c.SetMaxOpenConns(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.PingContext(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := c.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		c.Close()
		return nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}
	return standard.NewDB(DriverName, c), nil
}

// MustOpen is like Open but panics if the database cannot be opened.
func MustOpen(dsn string) db.DB {
	conn, err := Open(dsn)
	if err != nil {
		panic(err)
	}
	return conn
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory") ||
		strings.HasPrefix(dsn, "file::memory:")
}
