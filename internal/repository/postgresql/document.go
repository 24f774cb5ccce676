package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/geoattend/geoattend-backend-go/internal/domain/state"
	"github.com/geoattend/geoattend-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS app_documents (
	key        TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) state.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

// EnsureSchema creates the document table when missing.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	return WithTransaction(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create app_documents: %w", err)
		}
		return nil
	})
}

// Get implements state.DocumentRepository.
func (r *documentRepositoryImpl) Get(ctx context.Context, key string) ([]byte, error) {
	q := GetQuerier(ctx, r.db)

	var document []byte
	err := q.QueryRow(ctx, `SELECT document FROM app_documents WHERE key = $1`, key).Scan(&document)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, state.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", key, err)
	}
	return document, nil
}

// Put implements state.DocumentRepository.
func (r *documentRepositoryImpl) Put(ctx context.Context, key string, document []byte) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO app_documents (key, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		key, string(document),
	)
	if err != nil {
		return fmt.Errorf("put document %s: %w", key, err)
	}
	return nil
}

// Delete implements state.DocumentRepository.
func (r *documentRepositoryImpl) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM app_documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete document %s: %w", key, err)
	}
	return nil
}
