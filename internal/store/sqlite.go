package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// SQLiteBackend keeps documents as rows of a single table.
type SQLiteBackend struct {
	db *sqlx.DB
}

func OpenSQLite(dsn string) (*SQLiteBackend, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// One connection: ":memory:" databases are per-connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ensure schema")
	}
	return &SQLiteBackend{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents(
  kind TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

func (b *SQLiteBackend) Load(ctx context.Context, kind Kind) ([]byte, error) {
	var body string
	err := b.db.GetContext(ctx, &body, `SELECT body FROM documents WHERE kind = ?`, string(kind))
	if errors.Is(err, sql.ErrNoRows) {
		def := DefaultDocument(kind)
		if _, err := b.db.ExecContext(ctx, `
			INSERT INTO documents(kind, body, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(kind) DO NOTHING
		`, string(kind), string(def), now()); err != nil {
			return nil, fail("load", kind, err, "seed default document")
		}
		return def, nil
	}
	if err != nil {
		return nil, fail("load", kind, err, "select document")
	}
	return []byte(body), nil
}

func (b *SQLiteBackend) Save(ctx context.Context, kind Kind, doc []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO documents(kind, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, string(kind), string(doc), now())
	if err != nil {
		return fail("save", kind, err, "upsert document")
	}
	return nil
}

func (b *SQLiteBackend) Close() error { return b.db.Close() }

func now() string { return time.Now().UTC().Format(time.RFC3339) }
