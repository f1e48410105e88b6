package repository

import (
	"context"
	"testing"

	"tokenlotto/domain/entities"
	"tokenlotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLotteryRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLotteryRepository(testDB.DB)
	ctx := context.Background()

	current, err := repo.GetCurrentOpen(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	first := testutil.CreateTestLottery(100)
	require.NoError(t, repo.Create(ctx, first))
	second := testutil.CreateTestLottery(50)
	require.NoError(t, repo.Create(ctx, second))

	stored, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, first.Seed, stored.Seed)
	assert.Equal(t, int64(100), stored.TicketPrice)
	assert.False(t, stored.IsResolved())

	current, err = repo.GetCurrentOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	second.Resolve("alice", 50)
	require.NoError(t, repo.Update(ctx, second))

	resolved, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, resolved.IsResolved())
	assert.Equal(t, entities.AccountID("alice"), *resolved.WinnerID)
	assert.Equal(t, int64(50), *resolved.Payout)
	assert.NotNil(t, resolved.ResolvedAt)

	// a resolved lottery is never overwritten
	second.Resolve("bob", 999)
	assert.Error(t, repo.Update(ctx, second))

	current, err = repo.GetCurrentOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)

	missing, err := repo.GetByID(ctx, 424242)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLotteryParticipantRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	lotteryRepo := NewLotteryRepository(testDB.DB)
	repo := NewLotteryParticipantRepository(testDB.DB)
	ctx := context.Background()

	lottery := testutil.CreateTestLottery(10)
	require.NoError(t, lotteryRepo.Create(ctx, lottery))

	for _, account := range []entities.AccountID{"carol", "alice", "bob"} {
		added, err := repo.Add(ctx, testutil.CreateTestParticipant(lottery.ID, account, 10))
		require.NoError(t, err)
		assert.True(t, added)
	}

	added, err := repo.Add(ctx, testutil.CreateTestParticipant(lottery.ID, "alice", 10))
	require.NoError(t, err)
	assert.False(t, added)

	count, err := repo.Count(ctx, lottery.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	participants, err := repo.ListByLottery(ctx, lottery.ID)
	require.NoError(t, err)
	assert.Equal(t, []entities.AccountID{"carol", "alice", "bob"}, entities.ParticipantAccounts(participants))
}

func TestMemoRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMemoRepository(testDB.DB)
	ctx := context.Background()

	memo, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, memo)

	require.NoError(t, repo.Upsert(ctx, &entities.Memo{Account: "alice", Data: "first"}))
	require.NoError(t, repo.Upsert(ctx, &entities.Memo{Account: "alice", Data: "second"}))

	memo, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, memo)
	assert.Equal(t, "second", memo.Data)
}
