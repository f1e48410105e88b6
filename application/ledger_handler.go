package application

import (
	"context"
	"errors"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/domain/services"

	log "github.com/sirupsen/logrus"
)

// LedgerHandler translates host calls into ledger operations. Every call runs
// in its own unit of work.
type LedgerHandler struct {
	uowFactory UnitOfWorkFactory
	recorder   OperationRecorder
}

// NewLedgerHandler creates a new ledger handler. recorder may be nil.
func NewLedgerHandler(uowFactory UnitOfWorkFactory, recorder OperationRecorder) *LedgerHandler {
	return &LedgerHandler{
		uowFactory: uowFactory,
		recorder:   recorderOrNoop(recorder),
	}
}

func ledgerService(uow UnitOfWork) interfaces.LedgerService {
	return services.NewLedgerService(
		uow.TokenRepository(),
		uow.BalanceRepository(),
		uow.AllowanceRepository(),
		uow.LedgerEntryRepository(),
		uow.EventBus(),
	)
}

func (h *LedgerHandler) run(ctx context.Context, operation string, fn func(svc interfaces.LedgerService, uow UnitOfWork) error) error {
	err := withUnitOfWork(ctx, h.uowFactory, func(uow UnitOfWork) error {
		return fn(ledgerService(uow), uow)
	})
	h.recorder.RecordOperation(ctx, ComponentLedger, operation, ResultOf(err))
	return err
}

// Construct creates the ledger. It fails if one already exists.
func (h *LedgerHandler) Construct(ctx context.Context, totalSupply int64, treasury entities.AccountID) (*entities.Token, error) {
	var token *entities.Token
	err := h.run(ctx, "construct", func(svc interfaces.LedgerService, _ UnitOfWork) error {
		var err error
		token, err = svc.Construct(ctx, totalSupply, treasury)
		return err
	})
	return token, err
}

// EnsureConstructed constructs the ledger unless it already exists
func (h *LedgerHandler) EnsureConstructed(ctx context.Context, totalSupply int64, treasury entities.AccountID) error {
	_, err := h.Construct(ctx, totalSupply, treasury)
	if err == nil {
		return nil
	}
	if errors.Is(err, entities.ErrAlreadyInitialized) {
		log.Debug("Ledger already constructed")
		return nil
	}
	return err
}

// TotalSupply returns the fixed supply
func (h *LedgerHandler) TotalSupply(ctx context.Context) (int64, error) {
	var supply int64
	err := h.run(ctx, "total_supply", func(svc interfaces.LedgerService, _ UnitOfWork) error {
		var err error
		supply, err = svc.TotalSupply(ctx)
		return err
	})
	return supply, err
}

// BalanceOf returns the balance of the account
func (h *LedgerHandler) BalanceOf(ctx context.Context, account entities.AccountID) (int64, error) {
	var balance int64
	err := h.run(ctx, "balance_of", func(svc interfaces.LedgerService, _ UnitOfWork) error {
		var err error
		balance, err = svc.BalanceOf(ctx, account)
		return err
	})
	return balance, err
}

// AllowanceOf returns the allowance of spender over owner's balance
func (h *LedgerHandler) AllowanceOf(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	var allowance int64
	err := h.run(ctx, "allowance_of", func(svc interfaces.LedgerService, _ UnitOfWork) error {
		var err error
		allowance, err = svc.AllowanceOf(ctx, owner, spender)
		return err
	})
	return allowance, err
}

// Transfer moves amount from the caller to recipient. The returned directive
// has already been released to the payment sink when this returns.
func (h *LedgerHandler) Transfer(ctx context.Context, call Call, recipient entities.AccountID, amount int64) (*entities.PaymentDirective, error) {
	var directive *entities.PaymentDirective
	var issued bool
	err := h.run(ctx, "transfer", func(svc interfaces.LedgerService, uow UnitOfWork) error {
		var err error
		directive, err = svc.Transfer(ctx, call.Caller, recipient, amount)
		if err != nil {
			return err
		}
		issued = issueDirective(uow.EventBus(), directive)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if issued {
		h.recorder.RecordPaymentDirective(ctx, directive.Reason)
	}
	return directive, nil
}

// Approve sets the allowance of spender over the caller's balance
func (h *LedgerHandler) Approve(ctx context.Context, call Call, spender entities.AccountID, amount int64) error {
	return h.run(ctx, "approve", func(svc interfaces.LedgerService, _ UnitOfWork) error {
		return svc.Approve(ctx, call.Caller, spender, amount)
	})
}

// TransferFrom moves amount from owner to recipient on the caller's allowance
func (h *LedgerHandler) TransferFrom(ctx context.Context, call Call, owner, recipient entities.AccountID, amount int64) (*entities.PaymentDirective, error) {
	var directive *entities.PaymentDirective
	var issued bool
	err := h.run(ctx, "transfer_from", func(svc interfaces.LedgerService, uow UnitOfWork) error {
		var err error
		directive, err = svc.TransferFrom(ctx, call.Caller, owner, recipient, amount)
		if err != nil {
			return err
		}
		issued = issueDirective(uow.EventBus(), directive)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if issued {
		h.recorder.RecordPaymentDirective(ctx, directive.Reason)
	}
	return directive, nil
}

// History returns the latest ledger entries involving the account
func (h *LedgerHandler) History(ctx context.Context, account entities.AccountID, limit int) ([]*entities.LedgerEntry, error) {
	var entries []*entities.LedgerEntry
	err := h.run(ctx, "history", func(svc interfaces.LedgerService, _ UnitOfWork) error {
		var err error
		entries, err = svc.History(ctx, account, limit)
		return err
	})
	return entries, err
}
