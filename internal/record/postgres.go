package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the obras table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS obras (
    codigo     TEXT PRIMARY KEY,
    fields     JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database. The field map
// is serialised as JSONB so the schema never changes when the interview
// script does.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new [PostgresStore] over the given connection or
// pool. The caller is responsible for calling [PostgresStore.Migrate] to
// ensure the schema exists before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL, creating the obras table if it does not
// already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("record: migrate: %w", err)
	}
	return nil
}

// Upsert implements [Store.Upsert] with an ON CONFLICT whole-record replace.
func (s *PostgresStore) Upsert(ctx context.Context, b Bridge) error {
	if b.Code == "" {
		return ErrMissingCode
	}

	fieldsJSON, err := json.Marshal(emptyMap(b.Fields))
	if err != nil {
		return fmt.Errorf("record: marshal fields: %w", err)
	}

	const query = `
		INSERT INTO obras (codigo, fields)
		VALUES ($1, $2)
		ON CONFLICT (codigo) DO UPDATE
		SET fields = EXCLUDED.fields, updated_at = now()`

	if _, err := s.db.Exec(ctx, query, b.Code, fieldsJSON); err != nil {
		return fmt.Errorf("record: upsert %q: %w", b.Code, err)
	}
	return nil
}

// Get implements [Store.Get].
func (s *PostgresStore) Get(ctx context.Context, code string) (Bridge, error) {
	const query = `
		SELECT codigo, fields, created_at, updated_at
		FROM obras WHERE codigo = $1`

	b, err := scanBridge(s.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Bridge{}, ErrNotFound
		}
		return Bridge{}, fmt.Errorf("record: get %q: %w", code, err)
	}
	return b, nil
}

// List implements [Store.List].
func (s *PostgresStore) List(ctx context.Context) ([]Bridge, error) {
	const query = `
		SELECT codigo, fields, created_at, updated_at
		FROM obras ORDER BY codigo`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("record: list: %w", err)
	}
	defer rows.Close()

	var out []Bridge
	for rows.Next() {
		b, err := scanBridge(rows)
		if err != nil {
			return nil, fmt.Errorf("record: list: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("record: list: %w", err)
	}
	return out, nil
}

// Delete implements [Store.Delete].
func (s *PostgresStore) Delete(ctx context.Context, code string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM obras WHERE codigo = $1`, code)
	if err != nil {
		return fmt.Errorf("record: delete %q: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBridge(row pgx.Row) (Bridge, error) {
	var (
		b          Bridge
		fieldsJSON []byte
	)
	if err := row.Scan(&b.Code, &fieldsJSON, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return Bridge{}, err
	}
	if err := json.Unmarshal(fieldsJSON, &b.Fields); err != nil {
		return Bridge{}, fmt.Errorf("unmarshal fields: %w", err)
	}
	return b, nil
}

// emptyMap substitutes an empty map for nil so JSONB columns never store
// SQL NULL.
func emptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
