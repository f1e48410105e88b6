package repository

import (
	"context"
	"errors"
	"fmt"

	"tokenlotto/database"
	"tokenlotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

// MemoRepository implements the MemoRepository interface
type MemoRepository struct {
	q Queryable
}

// NewMemoRepository creates a new memo repository
func NewMemoRepository(db *database.DB) *MemoRepository {
	return &MemoRepository{q: db.Pool}
}

func newMemoRepositoryWithTx(tx Queryable) *MemoRepository {
	return &MemoRepository{q: tx}
}

// Upsert writes or replaces the memo
func (r *MemoRepository) Upsert(ctx context.Context, memo *entities.Memo) error {
	query := `
		INSERT INTO memos (account, data)
		VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE
		SET data = EXCLUDED.data,
		    updated_at = NOW()
		RETURNING updated_at
	`

	if err := r.q.QueryRow(ctx, query, string(memo.Account), memo.Data).Scan(&memo.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert memo for %s: %w", memo.Account, err)
	}
	return nil
}

// Get returns the memo or nil if the account has none
func (r *MemoRepository) Get(ctx context.Context, account entities.AccountID) (*entities.Memo, error) {
	var memo entities.Memo
	err := r.q.QueryRow(ctx, `SELECT account, data, updated_at FROM memos WHERE account = $1`, string(account)).Scan(
		&memo.Account,
		&memo.Data,
		&memo.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memo for %s: %w", account, err)
	}
	return &memo, nil
}
