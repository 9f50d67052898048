package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgDocument stores a document as one row of the documents table.
// Each write is a single UPSERT statement, which Postgres applies atomically.
type pgDocument struct {
	db   db
	name string
}

// NewPGDocument returns a Document stored under name in the documents table.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGDocument(db db, name string) Document {
	return &pgDocument{db: db, name: name}
}

// Read returns the stored JSON body, or ErrDocumentMissing if no row exists.
func (d *pgDocument) Read(ctx context.Context) ([]byte, error) {
	const q = `SELECT body FROM documents WHERE name = @name`

	var body []byte
	err := d.db.QueryRow(ctx, q, pgx.NamedArgs{"name": d.name}).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentMissing
		}
		return nil, fmt.Errorf("repo.pgDocument.Read: %w", err)
	}
	return body, nil
}

// Write inserts or replaces the row for this document.
func (d *pgDocument) Write(ctx context.Context, data []byte) error {
	const q = `
		INSERT INTO documents (name, body, updated_at)
		VALUES (@name, @body, now())
		ON CONFLICT (name) DO UPDATE
		SET body       = EXCLUDED.body,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"name": d.name,
		"body": string(data), // text is accepted as a jsonb literal
	}

	if _, err := d.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.pgDocument.Write: %w", err)
	}
	return nil
}
