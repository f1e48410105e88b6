package repository

import (
	"context"
	"errors"
	"fmt"

	"tokenlotto/database"
	"tokenlotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

// TokenRepository implements the TokenRepository interface
type TokenRepository struct {
	q Queryable
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *database.DB) *TokenRepository {
	return &TokenRepository{q: db.Pool}
}

func newTokenRepositoryWithTx(tx Queryable) *TokenRepository {
	return &TokenRepository{q: tx}
}

// Get returns the token, or nil if the ledger has not been constructed
func (r *TokenRepository) Get(ctx context.Context) (*entities.Token, error) {
	query := `
		SELECT total_supply, treasury, created_at
		FROM token
		WHERE id = 1
	`

	var token entities.Token
	err := r.q.QueryRow(ctx, query).Scan(
		&token.TotalSupply,
		&token.Treasury,
		&token.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, nil
}

// Create stores the token. The table holds at most one row.
func (r *TokenRepository) Create(ctx context.Context, token *entities.Token) error {
	query := `
		INSERT INTO token (id, total_supply, treasury)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query, token.TotalSupply, token.Treasury).Scan(&token.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.ErrAlreadyInitialized
	}
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}

	return nil
}
