package application

import (
	"context"

	"tokenlotto/domain/entities"
)

// Components reported to the OperationRecorder
const (
	ComponentLedger  = "ledger"
	ComponentLottery = "lottery"
	ComponentMemo    = "memo"
)

// Operation results reported to the OperationRecorder
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// OperationRecorder receives one sample per handled call
type OperationRecorder interface {
	RecordOperation(ctx context.Context, component, operation, result string)
	RecordPaymentDirective(ctx context.Context, reason entities.PaymentReason)
}

// ResultOf classifies an operation error
func ResultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case entities.IsPreconditionError(err):
		return ResultRejected
	default:
		return ResultError
	}
}

type noopRecorder struct{}

func (noopRecorder) RecordOperation(context.Context, string, string, string) {}

func (noopRecorder) RecordPaymentDirective(context.Context, entities.PaymentReason) {}

func recorderOrNoop(recorder OperationRecorder) OperationRecorder {
	if recorder == nil {
		return noopRecorder{}
	}
	return recorder
}
