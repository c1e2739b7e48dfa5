package db

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to Postgres ("pgx") or SQLite ("sqlite").
func Open(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s -> %w", driver, err)
	}
	switch driver {
	case "sqlite":
		// one writer; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite pragmas -> %w", err)
		}
		if !strings.Contains(dsn, "memory") {
			if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("sqlite pragmas -> %w", err)
			}
		}
	default:
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s -> %w", driver, err)
	}
	return db, nil
}
