package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/domain/testhelpers"
	"tokenlotto/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSeed = entities.FixedEntropy{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
	17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32,
}

type failingEntropy struct{}

func (failingEntropy) Seed() ([entities.SeedSize]byte, error) {
	return [entities.SeedSize]byte{}, errors.New("entropy unavailable")
}

func newMemoryLottery(t *testing.T, entropy entities.EntropySource, ticketPrice int64) (interfaces.LotteryService, *testhelpers.MemoryStore, *entities.Lottery) {
	t.Helper()

	store := testhelpers.NewMemoryStore()
	service := NewLotteryService(store.Lotteries(), store.Participants(), entropy, store)
	lottery, err := service.Construct(context.Background(), ticketPrice)
	require.NoError(t, err)
	return service, store, lottery
}

func TestLotteryService_Construct(t *testing.T) {
	t.Parallel()

	t.Run("captures seed", func(t *testing.T) {
		t.Parallel()
		_, _, lottery := newMemoryLottery(t, testSeed, 100)
		assert.Equal(t, [entities.SeedSize]byte(testSeed), lottery.Seed)
		assert.Equal(t, int64(100), lottery.TicketPrice)
		assert.False(t, lottery.IsResolved())
	})

	t.Run("free lottery", func(t *testing.T) {
		t.Parallel()
		_, _, lottery := newMemoryLottery(t, testSeed, 0)
		assert.Equal(t, int64(0), lottery.TicketPrice)
	})

	t.Run("negative ticket price", func(t *testing.T) {
		t.Parallel()
		store := testhelpers.NewMemoryStore()
		service := NewLotteryService(store.Lotteries(), store.Participants(), testSeed, store)
		lottery, err := service.Construct(context.Background(), -1)
		assert.ErrorIs(t, err, entities.ErrInvalidConfig)
		assert.Nil(t, lottery)
	})

	t.Run("entropy failure", func(t *testing.T) {
		t.Parallel()
		lotteryRepo := new(testhelpers.MockLotteryRepository)
		service := NewLotteryService(lotteryRepo, new(testhelpers.MockLotteryParticipantRepository), failingEntropy{}, new(testhelpers.MockEventPublisher))
		_, err := service.Construct(context.Background(), 10)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to capture lottery seed")
		lotteryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLotteryService_Enroll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, store, lottery := newMemoryLottery(t, testSeed, 100)

	result, err := service.Enroll(ctx, lottery.ID, alice, 100)
	require.NoError(t, err)
	assert.False(t, result.AlreadyEnrolled)
	assert.Equal(t, 1, result.ParticipantCount)

	result, err = service.Enroll(ctx, lottery.ID, bob, 250)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ParticipantCount)

	// enrolling again does not change odds or count
	result, err = service.Enroll(ctx, lottery.ID, alice, 100)
	require.NoError(t, err)
	assert.True(t, result.AlreadyEnrolled)
	assert.Equal(t, 2, result.ParticipantCount)

	_, err = service.Enroll(ctx, lottery.ID, carol, 99)
	assert.ErrorIs(t, err, entities.ErrInsufficientPayment)

	participants, err := service.Participants(ctx, lottery.ID)
	require.NoError(t, err)
	assert.Equal(t, []entities.AccountID{alice, bob}, entities.ParticipantAccounts(participants))

	var enrolled []entities.AccountID
	for _, ev := range store.Events {
		if e, ok := ev.(events.LotteryEnrolledEvent); ok {
			enrolled = append(enrolled, e.Account)
		}
	}
	assert.Equal(t, []entities.AccountID{alice, bob}, enrolled)

	_, err = service.Enroll(ctx, 999, alice, 100)
	assert.ErrorIs(t, err, entities.ErrLotteryNotFound)
}

func TestLotteryService_Draw(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, lottery := newMemoryLottery(t, testSeed, 100)

	_, err := service.Draw(ctx, lottery.ID, 100)
	assert.ErrorIs(t, err, entities.ErrNoParticipants)

	_, err = service.Enroll(ctx, lottery.ID, alice, 100)
	require.NoError(t, err)
	_, err = service.Enroll(ctx, lottery.ID, bob, 100)
	require.NoError(t, err)

	result, err := service.Draw(ctx, lottery.ID, 100)
	require.NoError(t, err)
	assert.Contains(t, []entities.AccountID{alice, bob}, result.Winner)
	assert.Equal(t, int64(100), result.Payout)
	assert.Equal(t, 2, result.ParticipantCount)
	require.NotNil(t, result.Directive)
	assert.Equal(t, result.Winner, result.Directive.Recipient)
	assert.Equal(t, int64(100), result.Directive.Amount)
	assert.Equal(t, entities.PaymentReasonLotteryPayout, result.Directive.Reason)

	resolved, err := service.Get(ctx, lottery.ID)
	require.NoError(t, err)
	require.True(t, resolved.IsResolved())
	assert.Equal(t, result.Winner, *resolved.WinnerID)

	// second draw fails and leaves the outcome untouched
	_, err = service.Draw(ctx, lottery.ID, 500)
	assert.ErrorIs(t, err, entities.ErrAlreadyResolved)

	_, err = service.Enroll(ctx, lottery.ID, carol, 100)
	assert.ErrorIs(t, err, entities.ErrAlreadyResolved)

	after, err := service.Get(ctx, lottery.ID)
	require.NoError(t, err)
	assert.Equal(t, resolved.WinnerID, after.WinnerID)
	assert.Equal(t, resolved.Payout, after.Payout)

	participants, err := service.Participants(ctx, lottery.ID)
	require.NoError(t, err)
	assert.Len(t, participants, 2)

	_, err = service.Current(ctx)
	assert.ErrorIs(t, err, entities.ErrLotteryNotFound)
}

func TestLotteryService_Draw_Reproducible(t *testing.T) {
	t.Parallel()

	var winners []entities.AccountID
	for i := 0; i < 5; i++ {
		ctx := context.Background()
		service, _, lottery := newMemoryLottery(t, testSeed, 10)
		_, err := service.Enroll(ctx, lottery.ID, alice, 10)
		require.NoError(t, err)
		_, err = service.Enroll(ctx, lottery.ID, bob, 10)
		require.NoError(t, err)

		result, err := service.Draw(ctx, lottery.ID, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), result.Payout)
		winners = append(winners, result.Winner)
	}

	for _, w := range winners {
		assert.Equal(t, winners[0], w)
	}
}

func TestLotteryService_Draw_SingleParticipant(t *testing.T) {
	t.Parallel()

	seeds := []entities.FixedEntropy{{}, testSeed, {0xff, 0xff, 0xff, 0xff}}
	for _, seed := range seeds {
		ctx := context.Background()
		service, _, lottery := newMemoryLottery(t, seed, 0)
		_, err := service.Enroll(ctx, lottery.ID, carol, 0)
		require.NoError(t, err)

		result, err := service.Draw(ctx, lottery.ID, 1000)
		require.NoError(t, err)
		assert.Equal(t, carol, result.Winner)
		assert.Equal(t, int64(0), result.Payout)
		assert.True(t, result.Directive.IsZero())
	}
}

func TestLotteryService_Draw_InvalidAttached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _, lottery := newMemoryLottery(t, testSeed, 0)
	_, err := service.Enroll(ctx, lottery.ID, alice, 0)
	require.NoError(t, err)
	_, err = service.Enroll(ctx, lottery.ID, bob, 0)
	require.NoError(t, err)
	_, err = service.Enroll(ctx, lottery.ID, carol, 0)
	require.NoError(t, err)

	_, err = service.Draw(ctx, lottery.ID, -1)
	assert.ErrorIs(t, err, entities.ErrInvalidAmount)

	_, err = service.Draw(ctx, lottery.ID, math.MaxInt64/2+1)
	assert.ErrorIs(t, err, entities.ErrInvalidAmount)

	// still open after the rejected draws
	current, err := service.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, lottery.ID, current.ID)
}

func TestLotteryService_Draw_UpdateError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	lotteryRepo := new(testhelpers.MockLotteryRepository)
	participantRepo := new(testhelpers.MockLotteryParticipantRepository)
	eventPublisher := new(testhelpers.MockEventPublisher)

	lottery := &entities.Lottery{ID: 7, TicketPrice: 10, Seed: [entities.SeedSize]byte(testSeed)}
	lotteryRepo.On("GetByIDForUpdate", ctx, int64(7)).Return(lottery, nil)
	participantRepo.On("ListByLottery", ctx, int64(7)).Return([]*entities.LotteryParticipant{
		{LotteryID: 7, Account: alice, Position: 1},
	}, nil)
	lotteryRepo.On("Update", ctx, mock.Anything).Return(errors.New("database error"))

	service := NewLotteryService(lotteryRepo, participantRepo, testSeed, eventPublisher)
	result, err := service.Draw(ctx, 7, 10)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to resolve lottery")
	eventPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}
