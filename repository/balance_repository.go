package repository

import (
	"context"
	"errors"
	"fmt"

	"tokenlotto/database"
	"tokenlotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BalanceRepository implements the BalanceRepository interface
type BalanceRepository struct {
	q Queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

func newBalanceRepositoryWithTx(tx Queryable) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

// GetBalance returns the balance, 0 for unknown accounts
func (r *BalanceRepository) GetBalance(ctx context.Context, account entities.AccountID) (int64, error) {
	return r.getBalance(ctx, `SELECT balance FROM balances WHERE account = $1`, account)
}

// GetBalanceForUpdate locks the account for the rest of the transaction and
// returns its balance. Accounts without a row are locked too, through a
// transaction scoped advisory lock keyed on the account.
func (r *BalanceRepository) GetBalanceForUpdate(ctx context.Context, account entities.AccountID) (int64, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, string(account)); err != nil {
		return 0, fmt.Errorf("failed to lock account %s: %w", account, err)
	}
	return r.getBalance(ctx, `SELECT balance FROM balances WHERE account = $1 FOR UPDATE`, account)
}

func (r *BalanceRepository) getBalance(ctx context.Context, query string, account entities.AccountID) (int64, error) {
	var balance int64
	err := r.q.QueryRow(ctx, query, string(account)).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s: %w", account, err)
	}
	return balance, nil
}

// SetBalance writes the balance. A zero balance removes the row.
func (r *BalanceRepository) SetBalance(ctx context.Context, account entities.AccountID, balance int64) error {
	if balance < 0 {
		return fmt.Errorf("refusing to store negative balance %d for %s", balance, account)
	}

	if balance == 0 {
		if _, err := r.q.Exec(ctx, `DELETE FROM balances WHERE account = $1`, string(account)); err != nil {
			return fmt.Errorf("failed to clear balance of %s: %w", account, err)
		}
		return nil
	}

	query := `
		INSERT INTO balances (account, balance)
		VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE
		SET balance = EXCLUDED.balance,
		    updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, query, string(account), balance); err != nil {
		return fmt.Errorf("failed to set balance of %s: %w", account, err)
	}
	return nil
}

// SumBalances returns the sum of all tracked balances
func (r *BalanceRepository) SumBalances(ctx context.Context) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0)::BIGINT FROM balances`).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum balances: %w", err)
	}
	return sum, nil
}
