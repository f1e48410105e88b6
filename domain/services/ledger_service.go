package services

import (
	"context"
	"fmt"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/events"

	log "github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// ledgerService implements the token ledger
type ledgerService struct {
	tokenRepo      interfaces.TokenRepository
	balanceRepo    interfaces.BalanceRepository
	allowanceRepo  interfaces.AllowanceRepository
	ledgerRepo     interfaces.LedgerEntryRepository
	eventPublisher interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	tokenRepo interfaces.TokenRepository,
	balanceRepo interfaces.BalanceRepository,
	allowanceRepo interfaces.AllowanceRepository,
	ledgerRepo interfaces.LedgerEntryRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.LedgerService {
	return &ledgerService{
		tokenRepo:      tokenRepo,
		balanceRepo:    balanceRepo,
		allowanceRepo:  allowanceRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// Construct creates the ledger. It only ever succeeds once per deployment.
func (s *ledgerService) Construct(ctx context.Context, totalSupply int64, treasury entities.AccountID) (*entities.Token, error) {
	token, err := entities.NewToken(totalSupply, treasury)
	if err != nil {
		return nil, err
	}

	existing, err := s.tokenRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if existing != nil {
		return nil, entities.ErrAlreadyInitialized
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	if token.HasTreasury() {
		if err := s.balanceRepo.SetBalance(ctx, *token.Treasury, token.TotalSupply); err != nil {
			return nil, fmt.Errorf("failed to credit treasury: %w", err)
		}
		if err := s.ledgerRepo.Record(ctx, entities.NewMintEntry(*token.Treasury, token.TotalSupply)); err != nil {
			return nil, fmt.Errorf("failed to record mint entry: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"totalSupply": token.TotalSupply,
		"treasury":    token.Treasury,
	}).Info("Ledger constructed")

	return token, nil
}

// TotalSupply returns the supply fixed at construction
func (s *ledgerService) TotalSupply(ctx context.Context) (int64, error) {
	token, err := s.requireToken(ctx)
	if err != nil {
		return 0, err
	}
	return token.TotalSupply, nil
}

// BalanceOf returns the balance of the account
func (s *ledgerService) BalanceOf(ctx context.Context, account entities.AccountID) (int64, error) {
	balance, err := s.balanceRepo.GetBalance(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Transfer moves amount from caller to recipient
func (s *ledgerService) Transfer(ctx context.Context, caller, recipient entities.AccountID, amount int64) (*entities.PaymentDirective, error) {
	if caller == recipient {
		return nil, entities.ErrSelfTransfer
	}
	if err := entities.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if _, err := s.requireToken(ctx); err != nil {
		return nil, err
	}

	balances, err := s.lockBalances(ctx, caller, recipient)
	if err != nil {
		return nil, err
	}

	if balances[caller] < amount {
		return nil, fmt.Errorf("%w: have %d, need %d", entities.ErrInsufficientBalance, balances[caller], amount)
	}

	// All checks passed, apply the mutation
	if err := s.moveBalance(ctx, balances, caller, recipient, amount); err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Record(ctx, entities.NewTransferEntry(caller, recipient, amount)); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	s.publish(events.LedgerTransferEvent{
		From:   caller,
		To:     recipient,
		Amount: amount,
	})

	log.WithFields(log.Fields{
		"from":   caller,
		"to":     recipient,
		"amount": amount,
	}).Info("Transfer completed")

	return entities.NewPaymentDirective(recipient, amount, entities.PaymentReasonTransfer), nil
}

// Approve overwrites the allowance of spender over caller's balance
func (s *ledgerService) Approve(ctx context.Context, caller, spender entities.AccountID, amount int64) error {
	if caller == spender {
		return entities.ErrSelfApproval
	}
	if err := entities.ValidateAmount(amount); err != nil {
		return err
	}
	if _, err := s.requireToken(ctx); err != nil {
		return err
	}

	if err := s.allowanceRepo.SetAllowance(ctx, caller, spender, amount); err != nil {
		return fmt.Errorf("failed to set allowance: %w", err)
	}

	if err := s.ledgerRepo.Record(ctx, entities.NewApprovalEntry(caller, spender, amount)); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	s.publish(events.LedgerApprovalEvent{
		Owner:   caller,
		Spender: spender,
		Amount:  amount,
	})

	return nil
}

// TransferFrom moves amount from owner to recipient using caller's allowance
func (s *ledgerService) TransferFrom(ctx context.Context, caller, owner, recipient entities.AccountID, amount int64) (*entities.PaymentDirective, error) {
	if caller == owner || recipient == owner {
		return nil, entities.ErrSelfTransfer
	}
	if err := entities.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if _, err := s.requireToken(ctx); err != nil {
		return nil, err
	}

	allowance, err := s.allowanceRepo.GetAllowanceForUpdate(ctx, owner, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to get allowance: %w", err)
	}
	if allowance < amount {
		return nil, fmt.Errorf("%w: approved %d, need %d", entities.ErrInsufficientAllowance, allowance, amount)
	}

	balances, err := s.lockBalances(ctx, owner, recipient)
	if err != nil {
		return nil, err
	}
	if balances[owner] < amount {
		return nil, fmt.Errorf("%w: owner has %d, need %d", entities.ErrInsufficientBalance, balances[owner], amount)
	}

	// All checks passed, apply the mutation
	if err := s.moveBalance(ctx, balances, owner, recipient, amount); err != nil {
		return nil, err
	}
	if err := s.allowanceRepo.SetAllowance(ctx, owner, caller, allowance-amount); err != nil {
		return nil, fmt.Errorf("failed to consume allowance: %w", err)
	}

	if err := s.ledgerRepo.Record(ctx, entities.NewTransferFromEntry(caller, owner, recipient, amount)); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	spender := caller
	s.publish(events.LedgerTransferEvent{
		From:    owner,
		To:      recipient,
		Spender: &spender,
		Amount:  amount,
	})

	log.WithFields(log.Fields{
		"spender":            caller,
		"owner":              owner,
		"to":                 recipient,
		"amount":             amount,
		"remainingAllowance": allowance - amount,
	}).Info("Transfer from completed")

	return entities.NewPaymentDirective(recipient, amount, entities.PaymentReasonTransferFrom), nil
}

// AllowanceOf returns the approved amount
func (s *ledgerService) AllowanceOf(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	allowance, err := s.allowanceRepo.GetAllowance(ctx, owner, spender)
	if err != nil {
		return 0, fmt.Errorf("failed to get allowance: %w", err)
	}
	return allowance, nil
}

// History returns the latest ledger entries involving the account
func (s *ledgerService) History(ctx context.Context, account entities.AccountID, limit int) ([]*entities.LedgerEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := s.ledgerRepo.GetByAccount(ctx, account, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger history: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) requireToken(ctx context.Context) (*entities.Token, error) {
	token, err := s.tokenRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	if token == nil {
		return nil, entities.ErrNotInitialized
	}
	return token, nil
}

// lockBalances reads both balances with row locks taken in a fixed order
func (s *ledgerService) lockBalances(ctx context.Context, a, b entities.AccountID) (map[entities.AccountID]int64, error) {
	balances := make(map[entities.AccountID]int64, 2)
	for _, account := range entities.LockOrder(a, b) {
		balance, err := s.balanceRepo.GetBalanceForUpdate(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to lock balance of %s: %w", account, err)
		}
		balances[account] = balance
	}
	return balances, nil
}

func (s *ledgerService) moveBalance(ctx context.Context, balances map[entities.AccountID]int64, from, to entities.AccountID, amount int64) error {
	if err := s.balanceRepo.SetBalance(ctx, from, balances[from]-amount); err != nil {
		return fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if err := s.balanceRepo.SetBalance(ctx, to, balances[to]+amount); err != nil {
		return fmt.Errorf("failed to credit %s: %w", to, err)
	}
	return nil
}

func (s *ledgerService) publish(event events.Event) {
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to publish event")
	}
}
