package testhelpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/events"
)

// MemoryStore keeps every repository in maps. It is meant for property tests
// over long operation sequences where mocks would be noise.
type MemoryStore struct {
	mu sync.Mutex

	token        *entities.Token
	balances     map[entities.AccountID]int64
	allowances   map[[2]entities.AccountID]int64
	entries      []*entities.LedgerEntry
	lotteries    map[int64]*entities.Lottery
	participants map[int64][]*entities.LotteryParticipant
	memos        map[entities.AccountID]*entities.Memo
	nextPosition int64

	Events []events.Event
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		balances:     make(map[entities.AccountID]int64),
		allowances:   make(map[[2]entities.AccountID]int64),
		lotteries:    make(map[int64]*entities.Lottery),
		participants: make(map[int64][]*entities.LotteryParticipant),
		memos:        make(map[entities.AccountID]*entities.Memo),
	}
}

// Tokens returns the store as a TokenRepository
func (s *MemoryStore) Tokens() interfaces.TokenRepository { return (*memoryTokens)(s) }

// Balances returns the store as a BalanceRepository
func (s *MemoryStore) Balances() interfaces.BalanceRepository { return (*memoryBalances)(s) }

// Allowances returns the store as an AllowanceRepository
func (s *MemoryStore) Allowances() interfaces.AllowanceRepository { return (*memoryAllowances)(s) }

// Entries returns the store as a LedgerEntryRepository
func (s *MemoryStore) Entries() interfaces.LedgerEntryRepository { return (*memoryEntries)(s) }

// Lotteries returns the store as a LotteryRepository
func (s *MemoryStore) Lotteries() interfaces.LotteryRepository { return (*memoryLotteries)(s) }

// Participants returns the store as a LotteryParticipantRepository
func (s *MemoryStore) Participants() interfaces.LotteryParticipantRepository { return (*memoryParticipants)(s) }

// Memos returns the store as a MemoRepository
func (s *MemoryStore) Memos() interfaces.MemoRepository { return (*memoryMemos)(s) }

// Publish records the event
func (s *MemoryStore) Publish(event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
	return nil
}

// Snapshot returns a copy of all balances and allowances
func (s *MemoryStore) Snapshot() (map[entities.AccountID]int64, map[[2]entities.AccountID]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances := make(map[entities.AccountID]int64, len(s.balances))
	for k, v := range s.balances {
		balances[k] = v
	}
	allowances := make(map[[2]entities.AccountID]int64, len(s.allowances))
	for k, v := range s.allowances {
		allowances[k] = v
	}
	return balances, allowances
}

type memoryTokens MemoryStore

func (r *memoryTokens) Get(ctx context.Context) (*entities.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token == nil {
		return nil, nil
	}
	token := *r.token
	return &token, nil
}

func (r *memoryTokens) Create(ctx context.Context, token *entities.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.token != nil {
		return entities.ErrAlreadyInitialized
	}
	token.CreatedAt = time.Now()
	stored := *token
	r.token = &stored
	return nil
}

type memoryBalances MemoryStore

func (r *memoryBalances) GetBalance(ctx context.Context, account entities.AccountID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balances[account], nil
}

func (r *memoryBalances) GetBalanceForUpdate(ctx context.Context, account entities.AccountID) (int64, error) {
	return r.GetBalance(ctx, account)
}

func (r *memoryBalances) SetBalance(ctx context.Context, account entities.AccountID, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if balance == 0 {
		delete(r.balances, account)
		return nil
	}
	r.balances[account] = balance
	return nil
}

func (r *memoryBalances) SumBalances(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, b := range r.balances {
		sum += b
	}
	return sum, nil
}

type memoryAllowances MemoryStore

func (r *memoryAllowances) GetAllowance(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allowances[[2]entities.AccountID{owner, spender}], nil
}

func (r *memoryAllowances) GetAllowanceForUpdate(ctx context.Context, owner, spender entities.AccountID) (int64, error) {
	return r.GetAllowance(ctx, owner, spender)
}

func (r *memoryAllowances) SetAllowance(ctx context.Context, owner, spender entities.AccountID, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]entities.AccountID{owner, spender}
	if amount == 0 {
		delete(r.allowances, key)
		return nil
	}
	r.allowances[key] = amount
	return nil
}

type memoryEntries MemoryStore

func (r *memoryEntries) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = int64(len(r.entries) + 1)
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryEntries) GetByAccount(ctx context.Context, account entities.AccountID, limit int) ([]*entities.LedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entities.LedgerEntry, 0)
	for i := len(r.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if r.entries[i].Involves(account) {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

type memoryLotteries MemoryStore

func (r *memoryLotteries) Create(ctx context.Context, lottery *entities.Lottery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lottery.ID = int64(len(r.lotteries) + 1)
	lottery.CreatedAt = time.Now()
	stored := *lottery
	r.lotteries[lottery.ID] = &stored
	return nil
}

func (r *memoryLotteries) GetByID(ctx context.Context, id int64) (*entities.Lottery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lottery, ok := r.lotteries[id]
	if !ok {
		return nil, nil
	}
	copied := *lottery
	return &copied, nil
}

func (r *memoryLotteries) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Lottery, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryLotteries) GetCurrentOpen(ctx context.Context) (*entities.Lottery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var current *entities.Lottery
	for _, lottery := range r.lotteries {
		if lottery.IsResolved() {
			continue
		}
		if current == nil || lottery.ID > current.ID {
			current = lottery
		}
	}
	if current == nil {
		return nil, nil
	}
	copied := *current
	return &copied, nil
}

func (r *memoryLotteries) Update(ctx context.Context, lottery *entities.Lottery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *lottery
	r.lotteries[lottery.ID] = &stored
	return nil
}

type memoryParticipants MemoryStore

func (r *memoryParticipants) Add(ctx context.Context, participant *entities.LotteryParticipant) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants[participant.LotteryID] {
		if p.Account == participant.Account {
			return false, nil
		}
	}
	r.nextPosition++
	participant.Position = r.nextPosition
	participant.EnrolledAt = time.Now()
	stored := *participant
	r.participants[participant.LotteryID] = append(r.participants[participant.LotteryID], &stored)
	return true, nil
}

func (r *memoryParticipants) ListByLottery(ctx context.Context, lotteryID int64) ([]*entities.LotteryParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*entities.LotteryParticipant, len(r.participants[lotteryID]))
	copy(list, r.participants[lotteryID])
	sort.Slice(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

func (r *memoryParticipants) Count(ctx context.Context, lotteryID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.participants[lotteryID]), nil
}

type memoryMemos MemoryStore

func (r *memoryMemos) Upsert(ctx context.Context, memo *entities.Memo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	memo.UpdatedAt = time.Now()
	stored := *memo
	r.memos[memo.Account] = &stored
	return nil
}

func (r *memoryMemos) Get(ctx context.Context, account entities.AccountID) (*entities.Memo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	memo, ok := r.memos[account]
	if !ok {
		return nil, nil
	}
	copied := *memo
	return &copied, nil
}
