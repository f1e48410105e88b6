package interfaces

import (
	"context"

	"tokenlotto/domain/entities"
)

// TokenRepository stores the single ledger instance
type TokenRepository interface {
	// Get returns the token, or nil if the ledger has not been constructed
	Get(ctx context.Context) (*entities.Token, error)

	// Create stores the token. Fails with ErrAlreadyInitialized if one exists.
	Create(ctx context.Context, token *entities.Token) error
}

// BalanceRepository defines the interface for account balance access
type BalanceRepository interface {
	// GetBalance returns the balance, 0 for unknown accounts
	GetBalance(ctx context.Context, account entities.AccountID) (int64, error)

	// GetBalanceForUpdate returns the balance and locks the row for the
	// rest of the transaction
	GetBalanceForUpdate(ctx context.Context, account entities.AccountID) (int64, error)

	// SetBalance writes the balance. A zero balance removes the row.
	SetBalance(ctx context.Context, account entities.AccountID, balance int64) error

	// SumBalances returns the sum of all tracked balances
	SumBalances(ctx context.Context) (int64, error)
}

// AllowanceRepository defines the interface for spender allowances
type AllowanceRepository interface {
	// GetAllowance returns the approved amount, 0 if unset
	GetAllowance(ctx context.Context, owner, spender entities.AccountID) (int64, error)

	// GetAllowanceForUpdate returns the approved amount and locks the row
	GetAllowanceForUpdate(ctx context.Context, owner, spender entities.AccountID) (int64, error)

	// SetAllowance overwrites the approved amount. Zero removes the row.
	SetAllowance(ctx context.Context, owner, spender entities.AccountID, amount int64) error
}

// LedgerEntryRepository defines the interface for the ledger history
type LedgerEntryRepository interface {
	// Record appends an entry and fills in its ID and timestamp
	Record(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByAccount returns the latest entries involving the account, newest first
	GetByAccount(ctx context.Context, account entities.AccountID, limit int) ([]*entities.LedgerEntry, error)
}

// LotteryRepository defines the interface for lottery data access
type LotteryRepository interface {
	// Create stores a new lottery and fills in its ID
	Create(ctx context.Context, lottery *entities.Lottery) error

	// GetByID returns the lottery or nil if not found
	GetByID(ctx context.Context, id int64) (*entities.Lottery, error)

	// GetByIDForUpdate returns the lottery and locks the row
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Lottery, error)

	// GetCurrentOpen returns the newest unresolved lottery or nil
	GetCurrentOpen(ctx context.Context) (*entities.Lottery, error)

	// Update persists the outcome of a lottery
	Update(ctx context.Context, lottery *entities.Lottery) error
}

// LotteryParticipantRepository defines the interface for participant sets
type LotteryParticipantRepository interface {
	// Add enrolls the account. Returns false if it was already a participant.
	Add(ctx context.Context, participant *entities.LotteryParticipant) (bool, error)

	// ListByLottery returns participants in enrollment order
	ListByLottery(ctx context.Context, lotteryID int64) ([]*entities.LotteryParticipant, error)

	// Count returns the number of distinct participants
	Count(ctx context.Context, lotteryID int64) (int, error)
}

// MemoRepository defines the interface for per-account memos
type MemoRepository interface {
	// Upsert writes or replaces the memo
	Upsert(ctx context.Context, memo *entities.Memo) error

	// Get returns the memo or nil if the account has none
	Get(ctx context.Context, account entities.AccountID) (*entities.Memo, error)
}
