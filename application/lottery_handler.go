package application

import (
	"context"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/domain/services"
)

// LotteryHandler translates host calls into lottery operations
type LotteryHandler struct {
	uowFactory UnitOfWorkFactory
	entropy    entities.EntropySource
	recorder   OperationRecorder
}

// NewLotteryHandler creates a new lottery handler. A nil entropy source
// falls back to crypto/rand; recorder may be nil.
func NewLotteryHandler(uowFactory UnitOfWorkFactory, entropy entities.EntropySource, recorder OperationRecorder) *LotteryHandler {
	if entropy == nil {
		entropy = entities.CryptoEntropy{}
	}
	return &LotteryHandler{
		uowFactory: uowFactory,
		entropy:    entropy,
		recorder:   recorderOrNoop(recorder),
	}
}

func (h *LotteryHandler) run(ctx context.Context, operation string, fn func(svc interfaces.LotteryService, uow UnitOfWork) error) error {
	err := withUnitOfWork(ctx, h.uowFactory, func(uow UnitOfWork) error {
		svc := services.NewLotteryService(
			uow.LotteryRepository(),
			uow.LotteryParticipantRepository(),
			h.entropy,
			uow.EventBus(),
		)
		return fn(svc, uow)
	})
	h.recorder.RecordOperation(ctx, ComponentLottery, operation, ResultOf(err))
	return err
}

// Construct opens a new lottery
func (h *LotteryHandler) Construct(ctx context.Context, ticketPrice int64) (*entities.Lottery, error) {
	var lottery *entities.Lottery
	err := h.run(ctx, "construct", func(svc interfaces.LotteryService, _ UnitOfWork) error {
		var err error
		lottery, err = svc.Construct(ctx, ticketPrice)
		return err
	})
	return lottery, err
}

// Enroll adds the caller to the lottery, paying with the attached value
func (h *LotteryHandler) Enroll(ctx context.Context, call Call, lotteryID int64) (*interfaces.EnrollResult, error) {
	var result *interfaces.EnrollResult
	err := h.run(ctx, "enroll", func(svc interfaces.LotteryService, _ UnitOfWork) error {
		var err error
		result, err = svc.Enroll(ctx, lotteryID, call.Caller, call.Attached)
		return err
	})
	return result, err
}

// Draw resolves the lottery and releases the payout directive after commit
func (h *LotteryHandler) Draw(ctx context.Context, call Call, lotteryID int64) (*interfaces.DrawResult, error) {
	var result *interfaces.DrawResult
	var issued bool
	err := h.run(ctx, "draw", func(svc interfaces.LotteryService, uow UnitOfWork) error {
		var err error
		result, err = svc.Draw(ctx, lotteryID, call.Attached)
		if err != nil {
			return err
		}
		issued = issueDirective(uow.EventBus(), result.Directive)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if issued {
		h.recorder.RecordPaymentDirective(ctx, result.Directive.Reason)
	}
	return result, nil
}

// Get returns the lottery by ID
func (h *LotteryHandler) Get(ctx context.Context, lotteryID int64) (*entities.Lottery, error) {
	var lottery *entities.Lottery
	err := h.run(ctx, "get", func(svc interfaces.LotteryService, _ UnitOfWork) error {
		var err error
		lottery, err = svc.Get(ctx, lotteryID)
		return err
	})
	return lottery, err
}

// Current returns the newest open lottery
func (h *LotteryHandler) Current(ctx context.Context) (*entities.Lottery, error) {
	var lottery *entities.Lottery
	err := h.run(ctx, "current", func(svc interfaces.LotteryService, _ UnitOfWork) error {
		var err error
		lottery, err = svc.Current(ctx)
		return err
	})
	return lottery, err
}

// Participants returns the participants in enrollment order
func (h *LotteryHandler) Participants(ctx context.Context, lotteryID int64) ([]*entities.LotteryParticipant, error) {
	var participants []*entities.LotteryParticipant
	err := h.run(ctx, "participants", func(svc interfaces.LotteryService, _ UnitOfWork) error {
		var err error
		participants, err = svc.Participants(ctx, lotteryID)
		return err
	})
	return participants, err
}

// ResolveID returns lotteryID, or the current open lottery when it is 0
func (h *LotteryHandler) ResolveID(ctx context.Context, lotteryID int64) (int64, error) {
	if lotteryID != 0 {
		return lotteryID, nil
	}
	current, err := h.Current(ctx)
	if err != nil {
		return 0, err
	}
	return current.ID, nil
}
