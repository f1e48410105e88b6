package repository

import (
	"context"
	"errors"
	"fmt"

	"tokenlotto/database"
	"tokenlotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AllowanceRepository implements the AllowanceRepository interface
type AllowanceRepository struct {
	q Queryable
}

// NewAllowanceRepository creates a new allowance repository
func NewAllowanceRepository(db *database.DB) *AllowanceRepository {
	return &AllowanceRepository{q: db.Pool}
}

func newAllowanceRepositoryWithTx(tx Queryable) *AllowanceRepository {
	return &AllowanceRepository{q: tx}
}

// GetAllowance returns the approved amount, 0 if unset
func (r *AllowanceRepository) GetAllowance(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	query := `SELECT amount FROM allowances WHERE owner = $1 AND spender = $2`
	return r.getAllowance(ctx, query, owner, spender)
}

// GetAllowanceForUpdate returns the approved amount with the row locked
func (r *AllowanceRepository) GetAllowanceForUpdate(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	query := `SELECT amount FROM allowances WHERE owner = $1 AND spender = $2 FOR UPDATE`
	return r.getAllowance(ctx, query, owner, spender)
}

func (r *AllowanceRepository) getAllowance(ctx context.Context, query string, owner, spender entities.AccountID) (int64, error) {
	var amount int64
	err := r.q.QueryRow(ctx, query, string(owner), string(spender)).Scan(&amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get allowance of %s for %s: %w", owner, spender, err)
	}
	return amount, nil
}

// SetAllowance overwrites the approved amount. Zero removes the row.
func (r *AllowanceRepository) SetAllowance(ctx context.Context, owner, spender entities.AccountID, amount int64) error {
	if amount == 0 {
		_, err := r.q.Exec(ctx, `DELETE FROM allowances WHERE owner = $1 AND spender = $2`, string(owner), string(spender))
		if err != nil {
			return fmt.Errorf("failed to clear allowance of %s for %s: %w", owner, spender, err)
		}
		return nil
	}

	query := `
		INSERT INTO allowances (owner, spender, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner, spender) DO UPDATE
		SET amount = EXCLUDED.amount,
		    updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, query, string(owner), string(spender), amount); err != nil {
		return fmt.Errorf("failed to set allowance of %s for %s: %w", owner, spender, err)
	}
	return nil
}
