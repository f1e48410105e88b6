package interfaces

import (
	"context"

	"tokenlotto/domain/entities"
	"tokenlotto/events"
)

// EventPublisher is what domain services publish through. Inside a unit of
// work it is the transactional publisher, so nothing leaves before commit.
type EventPublisher interface {
	Publish(event events.Event) error
}

// LedgerService defines the token ledger operations
type LedgerService interface {
	// Construct creates the ledger once. If treasury is non-empty the whole
	// supply is credited to it.
	Construct(ctx context.Context, totalSupply int64, treasury entities.AccountID) (*entities.Token, error)

	// TotalSupply returns the supply fixed at construction
	TotalSupply(ctx context.Context) (int64, error)

	// BalanceOf returns 0 for unknown accounts
	BalanceOf(ctx context.Context, account entities.AccountID) (int64, error)

	// Transfer moves amount from caller to recipient and returns the payment
	// directive the host must execute after commit
	Transfer(ctx context.Context, caller, recipient entities.AccountID, amount int64) (*entities.PaymentDirective, error)

	// Approve sets the allowance of spender over caller's balance
	Approve(ctx context.Context, caller, spender entities.AccountID, amount int64) error

	// TransferFrom moves amount from owner to recipient on caller's allowance
	TransferFrom(ctx context.Context, caller, owner, recipient entities.AccountID, amount int64) (*entities.PaymentDirective, error)

	// AllowanceOf returns 0 if unset
	AllowanceOf(ctx context.Context, owner, spender entities.AccountID) (int64, error)

	// History returns the latest ledger entries involving the account
	History(ctx context.Context, account entities.AccountID, limit int) ([]*entities.LedgerEntry, error)
}

// EnrollResult describes the lottery after an enrollment
type EnrollResult struct {
	Lottery          *entities.Lottery
	AlreadyEnrolled  bool
	ParticipantCount int
}

// DrawResult describes a resolved lottery
type DrawResult struct {
	Lottery          *entities.Lottery
	Winner           entities.AccountID
	Payout           int64
	ParticipantCount int
	Directive        *entities.PaymentDirective
}

// LotteryService defines the seeded lottery operations
type LotteryService interface {
	// Construct opens a new lottery and captures its seed
	Construct(ctx context.Context, ticketPrice int64) (*entities.Lottery, error)

	// Enroll adds caller to the participant set
	Enroll(ctx context.Context, lotteryID int64, caller entities.AccountID, attached int64) (*EnrollResult, error)

	// Draw picks the winner and resolves the lottery for good
	Draw(ctx context.Context, lotteryID int64, attached int64) (*DrawResult, error)

	// Get returns the lottery or ErrLotteryNotFound
	Get(ctx context.Context, lotteryID int64) (*entities.Lottery, error)

	// Current returns the newest open lottery or ErrLotteryNotFound
	Current(ctx context.Context) (*entities.Lottery, error)

	// Participants returns the participants in enrollment order
	Participants(ctx context.Context, lotteryID int64) ([]*entities.LotteryParticipant, error)
}

// MemoService defines the per-account memo store
type MemoService interface {
	// Store writes the memo for the account
	Store(ctx context.Context, account entities.AccountID, data string) error

	// Get returns the memo and whether one exists
	Get(ctx context.Context, account entities.AccountID) (string, bool, error)
}
