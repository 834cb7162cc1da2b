package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps the snapshot in a single table, one row per entity.
// Save rewrites the table inside a transaction so Load never observes a
// partial replace.
type PostgresStore struct {
	db    *sql.DB
	table string
}

const defaultStateTable = "group_hash_state"

// OpenPostgres connects with the pgx stdlib driver and ensures the state
// table exists.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("ping: %w", err)}
	}

	store := &PostgresStore{db: db, table: defaultStateTable}
	if err := store.ensureTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) ensureTable(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		entity_id     TEXT PRIMARY KEY,
		business_hash TEXT NOT NULL,
		full_hash     TEXT NOT NULL,
		etag          TEXT NOT NULL DEFAULT '',
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return &StorageError{Op: "migrate", Err: err}
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (Snapshot, error) {
	query := fmt.Sprintf("SELECT entity_id, business_hash, full_hash, etag FROM %s", s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	defer rows.Close()

	snap := Snapshot{}
	for rows.Next() {
		var id string
		var entry Entry
		if err := rows.Scan(&id, &entry.Hashes.BusinessHash, &entry.Hashes.FullHash, &entry.Etag); err != nil {
			return nil, &StorageError{Op: "load", Err: err}
		}
		snap[id] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	return snap, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return &StorageError{Op: "save", Err: err}
	}

	insert := fmt.Sprintf(
		"INSERT INTO %s (entity_id, business_hash, full_hash, etag, updated_at) VALUES ($1, $2, $3, $4, now())",
		s.table,
	)
	for id, entry := range snap {
		if _, err := tx.ExecContext(ctx, insert, id, entry.Hashes.BusinessHash, entry.Hashes.FullHash, entry.Etag); err != nil {
			return &StorageError{Op: "save", Err: fmt.Errorf("insert %s: %w", id, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
