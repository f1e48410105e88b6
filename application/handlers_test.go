package application

import (
	"context"
	"testing"

	"tokenlotto/domain/entities"
	"tokenlotto/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handlerSeed = entities.FixedEntropy{7, 7, 7}

func TestLedgerHandler_DirectivesReleasedAfterCommit(t *testing.T) {
	ctx := context.Background()
	factory := newMemoryFactory()
	recorder := &recordingRecorder{}
	handler := NewLedgerHandler(factory, recorder)

	_, err := handler.Construct(ctx, 1000, "alice")
	require.NoError(t, err)

	directive, err := handler.Transfer(ctx, Call{Caller: "alice"}, "bob", 100)
	require.NoError(t, err)

	directives := factory.delivered.directives()
	require.Len(t, directives, 1)
	assert.Equal(t, directive.ID, directives[0].ID)
	assert.Equal(t, []entities.PaymentReason{entities.PaymentReasonTransfer}, recorder.directives)

	// the transfer event travels alongside the directive
	var transfers int
	for _, ev := range factory.delivered.events {
		if _, ok := ev.(events.LedgerTransferEvent); ok {
			transfers++
		}
	}
	assert.Equal(t, 1, transfers)
}

func TestLedgerHandler_RejectedCallPublishesNothing(t *testing.T) {
	ctx := context.Background()
	factory := newMemoryFactory()
	recorder := &recordingRecorder{}
	handler := NewLedgerHandler(factory, recorder)

	_, err := handler.Construct(ctx, 1000, "alice")
	require.NoError(t, err)
	commits := factory.commits

	_, err = handler.Transfer(ctx, Call{Caller: "bob"}, "alice", 10)
	assert.ErrorIs(t, err, entities.ErrInsufficientBalance)

	_, err = handler.TransferFrom(ctx, Call{Caller: "bob"}, "alice", "carol", 10)
	assert.ErrorIs(t, err, entities.ErrInsufficientAllowance)

	assert.Equal(t, commits, factory.commits)
	assert.Empty(t, factory.delivered.directives())
	assert.Empty(t, recorder.directives)

	last := recorder.operations[len(recorder.operations)-1]
	assert.Equal(t, sample{ComponentLedger, "transfer_from", ResultRejected}, last)
}

func TestLedgerHandler_EnsureConstructed(t *testing.T) {
	ctx := context.Background()
	handler := NewLedgerHandler(newMemoryFactory(), nil)

	require.NoError(t, handler.EnsureConstructed(ctx, 1000, "alice"))
	require.NoError(t, handler.EnsureConstructed(ctx, 5000, "bob"))

	supply, err := handler.TotalSupply(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), supply)

	assert.ErrorIs(t, handler.EnsureConstructed(ctx, 0, ""), entities.ErrInvalidConfig)
}

func TestLotteryHandler_Flow(t *testing.T) {
	ctx := context.Background()
	factory := newMemoryFactory()
	recorder := &recordingRecorder{}
	handler := NewLotteryHandler(factory, handlerSeed, recorder)

	lottery, err := handler.Construct(ctx, 10)
	require.NoError(t, err)

	id, err := handler.ResolveID(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, lottery.ID, id)

	_, err = handler.Enroll(ctx, Call{Caller: "alice", Attached: 10}, id)
	require.NoError(t, err)
	_, err = handler.Enroll(ctx, Call{Caller: "bob", Attached: 10}, id)
	require.NoError(t, err)
	result, err := handler.Enroll(ctx, Call{Caller: "alice", Attached: 10}, id)
	require.NoError(t, err)
	assert.True(t, result.AlreadyEnrolled)

	draw, err := handler.Draw(ctx, Call{Caller: "carol", Attached: 10}, id)
	require.NoError(t, err)
	assert.Equal(t, int64(10), draw.Payout)

	directives := factory.delivered.directives()
	require.Len(t, directives, 1)
	assert.Equal(t, draw.Winner, directives[0].Recipient)
	assert.Equal(t, []entities.PaymentReason{entities.PaymentReasonLotteryPayout}, recorder.directives)

	_, err = handler.ResolveID(ctx, 0)
	assert.ErrorIs(t, err, entities.ErrLotteryNotFound)
}

func TestLotteryHandler_ZeroPayoutDropped(t *testing.T) {
	ctx := context.Background()
	factory := newMemoryFactory()
	handler := NewLotteryHandler(factory, handlerSeed, nil)

	lottery, err := handler.Construct(ctx, 0)
	require.NoError(t, err)
	_, err = handler.Enroll(ctx, Call{Caller: "alice"}, lottery.ID)
	require.NoError(t, err)

	draw, err := handler.Draw(ctx, Call{Caller: "alice", Attached: 10}, lottery.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.AccountID("alice"), draw.Winner)
	assert.True(t, draw.Directive.IsZero())
	assert.Empty(t, factory.delivered.directives())
}

func TestMemoHandler(t *testing.T) {
	ctx := context.Background()
	handler := NewMemoHandler(newMemoryFactory(), nil)

	require.NoError(t, handler.Store(ctx, Call{Caller: "alice"}, "note to self"))
	assert.ErrorIs(t, handler.Store(ctx, Call{Caller: "alice"}, ""), entities.ErrInvalidMemo)

	data, found, err := handler.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "note to self", data)

	_, found, err = handler.Get(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestResultOf(t *testing.T) {
	assert.Equal(t, ResultOK, ResultOf(nil))
	assert.Equal(t, ResultRejected, ResultOf(entities.ErrSelfApproval))
	assert.Equal(t, ResultError, ResultOf(assert.AnError))
}
