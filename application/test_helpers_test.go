package application

import (
	"context"
	"sync"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/domain/testhelpers"
	"tokenlotto/events"
)

// memoryUnitOfWork runs over a shared MemoryStore. State is not rolled back,
// only events are, which is what these tests look at.
type memoryUnitOfWork struct {
	store     *testhelpers.MemoryStore
	publisher *events.TransactionalPublisher
	started   bool
	commits   *int
}

type memoryUnitOfWorkFactory struct {
	store     *testhelpers.MemoryStore
	delivered *recordingPublisher
	commits   int
}

func newMemoryFactory() *memoryUnitOfWorkFactory {
	return &memoryUnitOfWorkFactory{
		store:     testhelpers.NewMemoryStore(),
		delivered: &recordingPublisher{},
	}
}

func (f *memoryUnitOfWorkFactory) Create() UnitOfWork {
	return &memoryUnitOfWork{
		store:     f.store,
		publisher: events.NewTransactionalPublisher(f.delivered),
		commits:   &f.commits,
	}
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error {
	u.started = true
	return nil
}

func (u *memoryUnitOfWork) Commit() error {
	u.started = false
	*u.commits++
	return u.publisher.Flush(context.Background())
}

func (u *memoryUnitOfWork) Rollback() error {
	if u.started {
		u.publisher.Discard()
		u.started = false
	}
	return nil
}

func (u *memoryUnitOfWork) TokenRepository() interfaces.TokenRepository { return u.store.Tokens() }
func (u *memoryUnitOfWork) BalanceRepository() interfaces.BalanceRepository {
	return u.store.Balances()
}
func (u *memoryUnitOfWork) AllowanceRepository() interfaces.AllowanceRepository {
	return u.store.Allowances()
}
func (u *memoryUnitOfWork) LedgerEntryRepository() interfaces.LedgerEntryRepository {
	return u.store.Entries()
}
func (u *memoryUnitOfWork) LotteryRepository() interfaces.LotteryRepository {
	return u.store.Lotteries()
}
func (u *memoryUnitOfWork) LotteryParticipantRepository() interfaces.LotteryParticipantRepository {
	return u.store.Participants()
}
func (u *memoryUnitOfWork) MemoRepository() interfaces.MemoRepository { return u.store.Memos() }
func (u *memoryUnitOfWork) EventBus() interfaces.EventPublisher        { return u.publisher }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) directives() []entities.PaymentDirective {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.PaymentDirective
	for _, ev := range r.events {
		if d, ok := ev.(events.PaymentDirectiveEvent); ok {
			out = append(out, d.Directive)
		}
	}
	return out
}

type sample struct {
	component, operation, result string
}

type recordingRecorder struct {
	operations []sample
	directives []entities.PaymentReason
}

func (r *recordingRecorder) RecordOperation(ctx context.Context, component, operation, result string) {
	r.operations = append(r.operations, sample{component, operation, result})
}

func (r *recordingRecorder) RecordPaymentDirective(ctx context.Context, reason entities.PaymentReason) {
	r.directives = append(r.directives, reason)
}
