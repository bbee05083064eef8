package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres keeps every collection in a single documents table with a
// JSONB body, which preserves the schemaless collection model while
// staying on a plain relational deployment.
type Postgres struct{ db *pgxpool.Pool }

func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Postgres{db: pool}, nil
}

// EnsureSchema creates the documents table if it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (collection, id)
		)
	`)
	return err
}

func (s *Postgres) Close() { s.db.Close() }

func (s *Postgres) Create(ctx context.Context, collection string, doc any) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	body, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.Exec(ctx, `
		INSERT INTO documents (collection, id, doc) VALUES ($1,$2,$3)
	`, collection, id, body)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Postgres) Get(ctx context.Context, collection, id string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var body []byte
	err := s.db.QueryRow(ctx, `
		SELECT doc FROM documents WHERE collection=$1 AND id=$2
	`, collection, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return Record{ID: id, Data: body}, nil
}

func (s *Postgres) ListAll(ctx context.Context, collection string) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT id, doc FROM documents WHERE collection=$1 ORDER BY created_at
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Postgres) ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter, err := json.Marshal(map[string]any{field: value})
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, doc FROM documents
		WHERE collection=$1 AND doc @> $2::jsonb
		ORDER BY created_at
	`, collection, filter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *Postgres) Update(ctx context.Context, collection, id string, patch map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	body, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE documents SET doc = doc || $3::jsonb
		WHERE collection=$1 AND id=$2
	`, collection, id, body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := s.db.Exec(ctx, `
		DELETE FROM documents WHERE collection=$1 AND id=$2
	`, collection, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecords(rows pgx.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var r Record
		var body []byte
		if err := rows.Scan(&r.ID, &body); err != nil {
			return nil, err
		}
		r.Data = body
		out = append(out, r)
	}
	return out, rows.Err()
}
