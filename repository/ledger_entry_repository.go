package repository

import (
	"context"
	"fmt"

	"tokenlotto/database"
	"tokenlotto/domain/entities"
)

// LedgerEntryRepository implements the LedgerEntryRepository interface
type LedgerEntryRepository struct {
	q Queryable
}

// NewLedgerEntryRepository creates a new ledger entry repository
func NewLedgerEntryRepository(db *database.DB) *LedgerEntryRepository {
	return &LedgerEntryRepository{q: db.Pool}
}

func newLedgerEntryRepositoryWithTx(tx Queryable) *LedgerEntryRepository {
	return &LedgerEntryRepository{q: tx}
}

// Record appends an entry
func (r *LedgerEntryRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (kind, from_account, to_account, spender, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		string(entry.Kind),
		entry.From,
		string(entry.To),
		entry.Spender,
		entry.Amount,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return nil
}

// GetByAccount returns the latest entries involving the account
func (r *LedgerEntryRepository) GetByAccount(ctx context.Context, account entities.AccountID, limit int) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, kind, from_account, to_account, spender, amount, created_at
		FROM ledger_entries
		WHERE from_account = $1 OR to_account = $1 OR spender = $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, string(account), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for %s: %w", account, err)
	}
	defer rows.Close()

	entries := make([]*entities.LedgerEntry, 0)
	for rows.Next() {
		var entry entities.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Kind,
			&entry.From,
			&entry.To,
			&entry.Spender,
			&entry.Amount,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}
