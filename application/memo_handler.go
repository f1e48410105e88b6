package application

import (
	"context"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/domain/services"
)

// MemoHandler translates host calls into memo store operations
type MemoHandler struct {
	uowFactory UnitOfWorkFactory
	recorder   OperationRecorder
}

// NewMemoHandler creates a new memo handler. recorder may be nil.
func NewMemoHandler(uowFactory UnitOfWorkFactory, recorder OperationRecorder) *MemoHandler {
	return &MemoHandler{
		uowFactory: uowFactory,
		recorder:   recorderOrNoop(recorder),
	}
}

func (h *MemoHandler) run(ctx context.Context, operation string, fn func(svc interfaces.MemoService) error) error {
	err := withUnitOfWork(ctx, h.uowFactory, func(uow UnitOfWork) error {
		return fn(services.NewMemoService(uow.MemoRepository(), uow.EventBus()))
	})
	h.recorder.RecordOperation(ctx, ComponentMemo, operation, ResultOf(err))
	return err
}

// Store writes the caller's memo
func (h *MemoHandler) Store(ctx context.Context, call Call, data string) error {
	return h.run(ctx, "store", func(svc interfaces.MemoService) error {
		return svc.Store(ctx, call.Caller, data)
	})
}

// Get returns the memo of any account
func (h *MemoHandler) Get(ctx context.Context, account entities.AccountID) (string, bool, error) {
	var data string
	var found bool
	err := h.run(ctx, "get", func(svc interfaces.MemoService) error {
		var err error
		data, found, err = svc.Get(ctx, account)
		return err
	})
	return data, found, err
}
