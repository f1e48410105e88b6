package repository

import (
	"context"
	"errors"
	"fmt"

	"tokenlotto/application"
	"tokenlotto/database"
	"tokenlotto/domain/interfaces"
	"tokenlotto/events"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher *events.TransactionalPublisher
	tokenRepo              interfaces.TokenRepository
	balanceRepo            interfaces.BalanceRepository
	allowanceRepo          interfaces.AllowanceRepository
	ledgerEntryRepo        interfaces.LedgerEntryRepository
	lotteryRepo            interfaces.LotteryRepository
	participantRepo        interfaces.LotteryParticipantRepository
	memoRepo               interfaces.MemoRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. Events are handed
// to publisher once a unit of work commits.
func NewUnitOfWorkFactory(db *database.DB, publisher events.Publisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

type unitOfWorkFactory struct {
	db        *database.DB
	publisher events.Publisher
}

func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: events.NewTransactionalPublisher(f.publisher),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.tokenRepo = newTokenRepositoryWithTx(tx)
	u.balanceRepo = newBalanceRepositoryWithTx(tx)
	u.allowanceRepo = newAllowanceRepositoryWithTx(tx)
	u.ledgerEntryRepo = newLedgerEntryRepositoryWithTx(tx)
	u.lotteryRepo = newLotteryRepositoryWithTx(tx)
	u.participantRepo = newLotteryParticipantRepositoryWithTx(tx)
	u.memoRepo = newMemoRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction, then releases pending events. A delivery
// failure is logged but does not fail the commit.
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	u.tx = nil
	if err != nil {
		u.transactionalPublisher.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := u.transactionalPublisher.Flush(u.ctx); err != nil {
		log.WithError(err).Error("Committed unit of work but event delivery failed")
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalPublisher.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

const notStarted = "unit of work not started - call Begin() first"

// TokenRepository returns the token repository for this unit of work
func (u *unitOfWork) TokenRepository() interfaces.TokenRepository {
	if u.tokenRepo == nil {
		panic(notStarted)
	}
	return u.tokenRepo
}

// BalanceRepository returns the balance repository for this unit of work
func (u *unitOfWork) BalanceRepository() interfaces.BalanceRepository {
	if u.balanceRepo == nil {
		panic(notStarted)
	}
	return u.balanceRepo
}

// AllowanceRepository returns the allowance repository for this unit of work
func (u *unitOfWork) AllowanceRepository() interfaces.AllowanceRepository {
	if u.allowanceRepo == nil {
		panic(notStarted)
	}
	return u.allowanceRepo
}

// LedgerEntryRepository returns the ledger entry repository for this unit of work
func (u *unitOfWork) LedgerEntryRepository() interfaces.LedgerEntryRepository {
	if u.ledgerEntryRepo == nil {
		panic(notStarted)
	}
	return u.ledgerEntryRepo
}

// LotteryRepository returns the lottery repository for this unit of work
func (u *unitOfWork) LotteryRepository() interfaces.LotteryRepository {
	if u.lotteryRepo == nil {
		panic(notStarted)
	}
	return u.lotteryRepo
}

// LotteryParticipantRepository returns the participant repository for this unit of work
func (u *unitOfWork) LotteryParticipantRepository() interfaces.LotteryParticipantRepository {
	if u.participantRepo == nil {
		panic(notStarted)
	}
	return u.participantRepo
}

// MemoRepository returns the memo repository for this unit of work
func (u *unitOfWork) MemoRepository() interfaces.MemoRepository {
	if u.memoRepo == nil {
		panic(notStarted)
	}
	return u.memoRepo
}

// EventBus returns the transactional publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.tx == nil && u.tokenRepo == nil {
		panic(notStarted)
	}
	return u.transactionalPublisher
}
