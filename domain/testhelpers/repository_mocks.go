package testhelpers

import (
	"context"

	"tokenlotto/domain/entities"
	"tokenlotto/events"

	"github.com/stretchr/testify/mock"
)

// MockTokenRepository is a mock implementation of TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Get(ctx context.Context) (*entities.Token, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Token), args.Error(1)
}

func (m *MockTokenRepository) Create(ctx context.Context, token *entities.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetBalance(ctx context.Context, account entities.AccountID) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceRepository) GetBalanceForUpdate(ctx context.Context, account entities.AccountID) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBalanceRepository) SetBalance(ctx context.Context, account entities.AccountID, balance int64) error {
	args := m.Called(ctx, account, balance)
	return args.Error(0)
}

func (m *MockBalanceRepository) SumBalances(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAllowanceRepository is a mock implementation of AllowanceRepository
type MockAllowanceRepository struct {
	mock.Mock
}

func (m *MockAllowanceRepository) GetAllowance(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	args := m.Called(ctx, owner, spender)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAllowanceRepository) GetAllowanceForUpdate(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	args := m.Called(ctx, owner, spender)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAllowanceRepository) SetAllowance(ctx context.Context, owner, spender entities.AccountID, amount int64) error {
	args := m.Called(ctx, owner, spender, amount)
	return args.Error(0)
}

// MockLedgerEntryRepository is a mock implementation of LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) GetByAccount(ctx context.Context, account entities.AccountID, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, account, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

// MockLotteryRepository is a mock implementation of LotteryRepository
type MockLotteryRepository struct {
	mock.Mock
}

func (m *MockLotteryRepository) Create(ctx context.Context, lottery *entities.Lottery) error {
	args := m.Called(ctx, lottery)
	return args.Error(0)
}

func (m *MockLotteryRepository) GetByID(ctx context.Context, id int64) (*entities.Lottery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lottery), args.Error(1)
}

func (m *MockLotteryRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Lottery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lottery), args.Error(1)
}

func (m *MockLotteryRepository) GetCurrentOpen(ctx context.Context) (*entities.Lottery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lottery), args.Error(1)
}

func (m *MockLotteryRepository) Update(ctx context.Context, lottery *entities.Lottery) error {
	args := m.Called(ctx, lottery)
	return args.Error(0)
}

// MockLotteryParticipantRepository is a mock implementation of LotteryParticipantRepository
type MockLotteryParticipantRepository struct {
	mock.Mock
}

func (m *MockLotteryParticipantRepository) Add(ctx context.Context, participant *entities.LotteryParticipant) (bool, error) {
	args := m.Called(ctx, participant)
	return args.Bool(0), args.Error(1)
}

func (m *MockLotteryParticipantRepository) ListByLottery(ctx context.Context, lotteryID int64) ([]*entities.LotteryParticipant, error) {
	args := m.Called(ctx, lotteryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LotteryParticipant), args.Error(1)
}

func (m *MockLotteryParticipantRepository) Count(ctx context.Context, lotteryID int64) (int, error) {
	args := m.Called(ctx, lotteryID)
	return args.Int(0), args.Error(1)
}

// MockMemoRepository is a mock implementation of MemoRepository
type MockMemoRepository struct {
	mock.Mock
}

func (m *MockMemoRepository) Upsert(ctx context.Context, memo *entities.Memo) error {
	args := m.Called(ctx, memo)
	return args.Error(0)
}

func (m *MockMemoRepository) Get(ctx context.Context, account entities.AccountID) (*entities.Memo, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Memo), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
