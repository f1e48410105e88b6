package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tokenlotto/domain/entities"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeLedgerTransfer   EventType = "ledger_transfer"
	EventTypeLedgerApproval   EventType = "ledger_approval"
	EventTypePaymentDirective EventType = "payment_directive"
	EventTypeLotteryEnrolled  EventType = "lottery_enrolled"
	EventTypeLotteryResolved  EventType = "lottery_resolved"
	EventTypeMemoStored       EventType = "memo_stored"
)

// AllEventTypes lists every event type that can be published
var AllEventTypes = []EventType{
	EventTypeLedgerTransfer,
	EventTypeLedgerApproval,
	EventTypePaymentDirective,
	EventTypeLotteryEnrolled,
	EventTypeLotteryResolved,
	EventTypeMemoStored,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// LedgerTransferEvent is emitted for both transfer and transfer-from
type LedgerTransferEvent struct {
	From    entities.AccountID  `json:"from"`
	To      entities.AccountID  `json:"to"`
	Spender *entities.AccountID `json:"spender,omitempty"`
	Amount  int64               `json:"amount"`
}

func (e LedgerTransferEvent) Type() EventType {
	return EventTypeLedgerTransfer
}

// LedgerApprovalEvent carries the new absolute allowance
type LedgerApprovalEvent struct {
	Owner   entities.AccountID `json:"owner"`
	Spender entities.AccountID `json:"spender"`
	Amount  int64              `json:"amount"`
}

func (e LedgerApprovalEvent) Type() EventType {
	return EventTypeLedgerApproval
}

// PaymentDirectiveEvent asks the payment host to move value externally.
// It must only ever be published after the state change that produced it
// has been committed.
type PaymentDirectiveEvent struct {
	Directive entities.PaymentDirective `json:"directive"`
	IssuedAt  time.Time                 `json:"issued_at"`
}

func (e PaymentDirectiveEvent) Type() EventType {
	return EventTypePaymentDirective
}

// LotteryEnrolledEvent is emitted when a new participant joins a lottery
type LotteryEnrolledEvent struct {
	LotteryID        int64              `json:"lottery_id"`
	Account          entities.AccountID `json:"account"`
	Attached         int64              `json:"attached"`
	ParticipantCount int                `json:"participant_count"`
}

func (e LotteryEnrolledEvent) Type() EventType {
	return EventTypeLotteryEnrolled
}

// LotteryResolvedEvent is emitted once per lottery when the winner is drawn
type LotteryResolvedEvent struct {
	LotteryID        int64              `json:"lottery_id"`
	Winner           entities.AccountID `json:"winner"`
	Payout           int64              `json:"payout"`
	ParticipantCount int                `json:"participant_count"`
}

func (e LotteryResolvedEvent) Type() EventType {
	return EventTypeLotteryResolved
}

// MemoStoredEvent is emitted when an account's memo is written
type MemoStoredEvent struct {
	Account entities.AccountID `json:"account"`
	Length  int                `json:"length"`
}

func (e MemoStoredEvent) Type() EventType {
	return EventTypeMemoStored
}

// Publisher delivers events to whatever sits behind it
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event) error

// Bus dispatches events to in-process handlers
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeAll adds a handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, eventType := range AllEventTypes {
		b.Subscribe(eventType, handler)
	}
}

// Publish runs every handler registered for the event type in order. All
// handlers run even if one fails; the first error is returned.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	var firstErr error
	for i, handler := range handlers {
		if err := b.safeCall(ctx, handler, event); err != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": i,
				"error":        err,
			}).Error("Event handler failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (b *Bus) safeCall(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler panicked: %v", r)
		}
	}()
	return handler(ctx, event)
}

// TransactionalPublisher holds events coupled to a unit of work and only
// hands them to the real publisher after the commit succeeded.
type TransactionalPublisher struct {
	real    Publisher
	pending []Event // stashed until Flush
}

// NewTransactionalPublisher wraps the real publisher
func NewTransactionalPublisher(real Publisher) *TransactionalPublisher {
	return &TransactionalPublisher{real: real}
}

// Publish buffers the event. It never fails.
func (p *TransactionalPublisher) Publish(event Event) error {
	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"pendingCount": len(p.pending),
	}).Debug("Adding event to transactional publisher pending queue")
	p.pending = append(p.pending, event)
	return nil
}

// Pending returns the number of buffered events
func (p *TransactionalPublisher) Pending() int {
	return len(p.pending)
}

// Flush is called after a successful commit. Every pending event is
// attempted; the committed state stays the source of truth whatever the
// delivery outcome.
func (p *TransactionalPublisher) Flush(ctx context.Context) error {
	pending := p.pending
	p.pending = nil

	log.WithFields(log.Fields{
		"pendingEventCount": len(pending),
	}).Debug("Flushing pending events")

	// The transaction context may already be cancelled
	eventCtx := context.WithoutCancel(ctx)

	var failed int
	var firstErr error
	for _, ev := range pending {
		if err := p.real.Publish(eventCtx, ev); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			log.WithFields(log.Fields{
				"eventType": ev.Type(),
				"error":     err,
			}).Error("Failed to publish event after commit")
		}
	}

	if firstErr != nil {
		return fmt.Errorf("failed to publish %d of %d events: %w", failed, len(pending), firstErr)
	}
	return nil
}

// Discard is called after a rollback
func (p *TransactionalPublisher) Discard() {
	if len(p.pending) > 0 {
		log.WithField("discardedCount", len(p.pending)).Debug("Discarding pending events")
	}
	p.pending = nil
}
