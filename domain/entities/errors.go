package entities

import "errors"

// Precondition failures. Every one of these is reported before any state is
// touched, so a call that returns one of them has changed nothing.
var (
	// Malformed call arguments
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidMemo   = errors.New("invalid memo")

	// Disallowed counterparty
	ErrSelfTransfer = errors.New("cannot transfer to or from the same account")
	ErrSelfApproval = errors.New("cannot approve self")

	// Quantity checks against current state
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrInsufficientPayment   = errors.New("insufficient payment")

	// Lottery state machine
	ErrNoParticipants  = errors.New("no participants have enrolled")
	ErrAlreadyResolved = errors.New("lottery is already resolved")

	// Host state guards
	ErrAlreadyInitialized = errors.New("ledger is already initialized")
	ErrNotInitialized     = errors.New("ledger is not initialized")
	ErrLotteryNotFound    = errors.New("lottery not found")
)

var preconditionErrors = []error{
	ErrInvalidConfig,
	ErrInvalidAmount,
	ErrInvalidMemo,
	ErrSelfTransfer,
	ErrSelfApproval,
	ErrInsufficientBalance,
	ErrInsufficientAllowance,
	ErrInsufficientPayment,
	ErrNoParticipants,
	ErrAlreadyResolved,
	ErrAlreadyInitialized,
	ErrNotInitialized,
	ErrLotteryNotFound,
}

// IsPreconditionError reports whether err is a rejected call rather than a
// system failure. Hosts use it to decide what can be shown to the caller.
func IsPreconditionError(err error) bool {
	for _, target := range preconditionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
