package repository

import (
	"context"
	"sync"
	"testing"

	"tokenlotto/application"
	"tokenlotto/domain/entities"
	"tokenlotto/events"
	"tokenlotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturingPublisher) Publish(ctx context.Context, event events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturingPublisher) directives() []entities.PaymentDirective {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []entities.PaymentDirective
	for _, ev := range c.events {
		if d, ok := ev.(events.PaymentDirectiveEvent); ok {
			out = append(out, d.Directive)
		}
	}
	return out
}

func TestUnitOfWork_LedgerFlow(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := &capturingPublisher{}
	handler := application.NewLedgerHandler(NewUnitOfWorkFactory(testDB.DB, publisher), nil)

	_, err := handler.Construct(ctx, 1000, "alice")
	require.NoError(t, err)
	require.NoError(t, handler.EnsureConstructed(ctx, 1000, "alice"))

	directive, err := handler.Transfer(ctx, application.Call{Caller: "alice"}, "bob", 100)
	require.NoError(t, err)
	assert.Equal(t, entities.AccountID("bob"), directive.Recipient)

	balance, err := handler.BalanceOf(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	// rejected call publishes nothing and changes nothing
	_, err = handler.Transfer(ctx, application.Call{Caller: "alice"}, "bob", 1000)
	assert.ErrorIs(t, err, entities.ErrInsufficientBalance)

	balance, err = handler.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(900), balance)

	require.NoError(t, handler.Approve(ctx, application.Call{Caller: "alice"}, "bob", 300))
	_, err = handler.TransferFrom(ctx, application.Call{Caller: "bob"}, "alice", "carol", 200)
	require.NoError(t, err)

	allowance, err := handler.AllowanceOf(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(100), allowance)

	directives := publisher.directives()
	require.Len(t, directives, 2)
	assert.Equal(t, entities.PaymentReasonTransfer, directives[0].Reason)
	assert.Equal(t, entities.PaymentReasonTransferFrom, directives[1].Reason)
	assert.Equal(t, int64(200), directives[1].Amount)

	sum, err := NewBalanceRepository(testDB.DB).SumBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), sum)
}

func TestUnitOfWork_ConcurrentTransfersConserveSupply(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	handler := application.NewLedgerHandler(NewUnitOfWorkFactory(testDB.DB, &capturingPublisher{}), nil)
	_, err := handler.Construct(ctx, 1000, "alice")
	require.NoError(t, err)

	accounts := []entities.AccountID{"alice", "bob", "carol"}

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from := accounts[i%len(accounts)]
			to := accounts[(i+1)%len(accounts)]
			// failures are expected when a sender runs dry
			_, _ = handler.Transfer(ctx, application.Call{Caller: from}, to, 40)
		}(i)
	}
	wg.Wait()

	sum, err := NewBalanceRepository(testDB.DB).SumBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), sum)
}

func TestUnitOfWork_LotteryFlow(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	publisher := &capturingPublisher{}
	handler := application.NewLotteryHandler(NewUnitOfWorkFactory(testDB.DB, publisher), testutil.TestSeed, nil)

	lottery, err := handler.Construct(ctx, 25)
	require.NoError(t, err)

	id, err := handler.ResolveID(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, lottery.ID, id)

	_, err = handler.Enroll(ctx, application.Call{Caller: "alice", Attached: 25}, id)
	require.NoError(t, err)
	_, err = handler.Enroll(ctx, application.Call{Caller: "bob", Attached: 30}, id)
	require.NoError(t, err)
	_, err = handler.Enroll(ctx, application.Call{Caller: "carol", Attached: 5}, id)
	assert.ErrorIs(t, err, entities.ErrInsufficientPayment)

	result, err := handler.Draw(ctx, application.Call{Caller: "dave", Attached: 25}, id)
	require.NoError(t, err)
	assert.Equal(t, int64(25), result.Payout)

	// same seed and order as a pure in-memory pick
	expected, err := testutil.CreateTestLottery(25).PickWinner([]entities.AccountID{"alice", "bob"})
	require.NoError(t, err)
	assert.Equal(t, expected, result.Winner)

	_, err = handler.Draw(ctx, application.Call{Caller: "dave", Attached: 25}, id)
	assert.ErrorIs(t, err, entities.ErrAlreadyResolved)

	directives := publisher.directives()
	require.Len(t, directives, 1)
	assert.Equal(t, result.Winner, directives[0].Recipient)
	assert.Equal(t, entities.PaymentReasonLotteryPayout, directives[0].Reason)
}

func TestUnitOfWork_NotStarted(t *testing.T) {
	uow := NewUnitOfWorkFactory(nil, &capturingPublisher{}).Create()
	assert.Panics(t, func() { uow.BalanceRepository() })
	assert.NoError(t, uow.Rollback())
	assert.Error(t, uow.Commit())
}
