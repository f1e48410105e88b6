package repository

import (
	"context"
	"testing"

	"tokenlotto/domain/entities"
	"tokenlotto/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTokenRepository(testDB.DB)
	ctx := context.Background()

	t.Run("absent before construction", func(t *testing.T) {
		token, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("create once", func(t *testing.T) {
		token := testutil.CreateTestToken(1000, "treasury")
		require.NoError(t, repo.Create(ctx, token))
		assert.False(t, token.CreatedAt.IsZero())

		stored, err := repo.Get(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, int64(1000), stored.TotalSupply)
		require.NotNil(t, stored.Treasury)
		assert.Equal(t, entities.AccountID("treasury"), *stored.Treasury)

		err = repo.Create(ctx, testutil.CreateTestToken(5, ""))
		assert.ErrorIs(t, err, entities.ErrAlreadyInitialized)
	})
}

func TestBalanceRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	balance, err := repo.GetBalance(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	require.NoError(t, repo.SetBalance(ctx, "alice", 500))
	require.NoError(t, repo.SetBalance(ctx, "bob", 250))
	require.NoError(t, repo.SetBalance(ctx, "alice", 400))

	balance, err = repo.GetBalance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(400), balance)

	sum, err := repo.SumBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(650), sum)

	// zero removes the row
	require.NoError(t, repo.SetBalance(ctx, "bob", 0))
	var rows int
	require.NoError(t, testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM balances`).Scan(&rows))
	assert.Equal(t, 1, rows)

	assert.Error(t, repo.SetBalance(ctx, "alice", -1))
}

func TestBalanceRepository_ForUpdateInsideTransaction(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	tx, err := testDB.DB.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	repo := newBalanceRepositoryWithTx(tx)
	balance, err := repo.GetBalanceForUpdate(ctx, "fresh-account")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	require.NoError(t, repo.SetBalance(ctx, "fresh-account", 10))
	balance, err = repo.GetBalanceForUpdate(ctx, "fresh-account")
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestAllowanceRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewAllowanceRepository(testDB.DB)
	ctx := context.Background()

	amount, err := repo.GetAllowance(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)

	require.NoError(t, repo.SetAllowance(ctx, "alice", "bob", 300))
	require.NoError(t, repo.SetAllowance(ctx, "alice", "bob", 50))

	amount, err = repo.GetAllowance(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(50), amount)

	amount, err = repo.GetAllowance(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)

	require.NoError(t, repo.SetAllowance(ctx, "alice", "bob", 0))
	amount, err = repo.GetAllowance(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)
}

func TestLedgerEntryRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLedgerEntryRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, entities.NewMintEntry("alice", 1000)))
	require.NoError(t, repo.Record(ctx, entities.NewTransferEntry("alice", "bob", 10)))
	require.NoError(t, repo.Record(ctx, entities.NewApprovalEntry("bob", "carol", 5)))
	fromEntry := entities.NewTransferFromEntry("carol", "bob", "dave", 5)
	require.NoError(t, repo.Record(ctx, fromEntry))
	assert.NotZero(t, fromEntry.ID)

	entries, err := repo.GetByAccount(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entities.EntryKindTransferFrom, entries[0].Kind)
	require.NotNil(t, entries[0].Spender)
	assert.Equal(t, entities.AccountID("carol"), *entries[0].Spender)

	entries, err = repo.GetByAccount(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.EntryKindMint, entries[1].Kind)
	assert.Nil(t, entries[1].From)

	entries, err = repo.GetByAccount(ctx, "carol", 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
