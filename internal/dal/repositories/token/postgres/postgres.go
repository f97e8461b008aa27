package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/innatthecape/breakfast-svc/internal/dal/postgres"
	"github.com/innatthecape/breakfast-svc/internal/service/models/credential"
)

// TokenRepository implements the credential store for PostgreSQL. The table
// is keyed by (record_type, created_at), not by token, so the validator
// reads the whole table for every membership check. That is a deliberate
// O(n) cost for a low-volume store.
type TokenRepository struct {
	client *postgres.Client
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(client *postgres.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

// List returns every stored credential.
func (r *TokenRepository) List(ctx context.Context) ([]credential.Credential, error) {
	query, args, err := sq.Select("record_type", "token", "created_at").
		From("access_tokens").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan credential store: %w", err)
	}
	defer rows.Close()

	var creds []credential.Credential
	for rows.Next() {
		var cred credential.Credential
		if err := rows.Scan(&cred.RecordType, &cred.Token, &cred.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, cred)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return creds, nil
}

// Insert stores a newly issued credential. The table is keyed by
// (record_type, created_at), so a second credential issued in the same
// second replaces the first rather than failing the issuance.
func (r *TokenRepository) Insert(ctx context.Context, cred credential.Credential) error {
	query, args, err := sq.Insert("access_tokens").
		Columns("record_type", "token", "created_at").
		Values(cred.RecordType, cred.Token, cred.CreatedAt).
		Suffix("ON CONFLICT (record_type, created_at) DO UPDATE SET token = EXCLUDED.token").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}

	return nil
}

// DeleteOldest removes the count oldest credentials by creation timestamp
// and returns what was deleted.
func (r *TokenRepository) DeleteOldest(ctx context.Context, count int) ([]credential.Credential, error) {
	query, args, err := sq.Delete("access_tokens").
		Where(`(record_type, created_at) IN (
			SELECT record_type, created_at FROM access_tokens
			ORDER BY created_at ASC
			LIMIT ?)`, count).
		Suffix("RETURNING record_type, token, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete oldest credentials: %w", err)
	}
	defer rows.Close()

	var deleted []credential.Credential
	for rows.Next() {
		var cred credential.Credential
		if err := rows.Scan(&cred.RecordType, &cred.Token, &cred.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deleted credential: %w", err)
		}
		deleted = append(deleted, cred)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return deleted, nil
}
