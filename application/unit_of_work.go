package application

import (
	"context"

	"tokenlotto/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and then flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	TokenRepository() interfaces.TokenRepository
	BalanceRepository() interfaces.BalanceRepository
	AllowanceRepository() interfaces.AllowanceRepository
	LedgerEntryRepository() interfaces.LedgerEntryRepository
	LotteryRepository() interfaces.LotteryRepository
	LotteryParticipantRepository() interfaces.LotteryParticipantRepository
	MemoRepository() interfaces.MemoRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a fresh, not yet started unit of work
	Create() UnitOfWork
}

// withUnitOfWork runs fn inside a fresh unit of work. The work is committed
// only if fn succeeds; otherwise everything, events included, is discarded.
func withUnitOfWork(ctx context.Context, factory UnitOfWorkFactory, fn func(uow UnitOfWork) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit()
}
