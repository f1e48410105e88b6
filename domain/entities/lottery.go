package entities

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// SeedSize is the size of the seed captured when a lottery is constructed
const SeedSize = 32

// Lottery is a single seeded draw over a growing participant set.
// It is Open until a winner is drawn, then Resolved for good.
type Lottery struct {
	ID          int64          `db:"id"`
	TicketPrice int64          `db:"ticket_price"`
	Seed        [SeedSize]byte `db:"seed"`
	WinnerID    *AccountID     `db:"winner"`      // NULL while open
	Payout      *int64         `db:"payout"`      // NULL while open
	ResolvedAt  *time.Time     `db:"resolved_at"` // NULL while open
	CreatedAt   time.Time      `db:"created_at"`
}

// NewLottery validates the ticket price and captures the seed from entropy.
// The seed is never sampled again.
func NewLottery(ticketPrice int64, entropy EntropySource) (*Lottery, error) {
	if ticketPrice < 0 {
		return nil, ErrInvalidConfig
	}

	seed, err := entropy.Seed()
	if err != nil {
		return nil, fmt.Errorf("failed to capture lottery seed: %w", err)
	}

	return &Lottery{
		TicketPrice: ticketPrice,
		Seed:        seed,
	}, nil
}

// IsResolved returns true once a winner has been drawn
func (l *Lottery) IsResolved() bool {
	return l.WinnerID != nil
}

// CheckEnrollment validates an enrollment attempt against the lottery state
func (l *Lottery) CheckEnrollment(attached int64) error {
	if l.IsResolved() {
		return ErrAlreadyResolved
	}
	if attached < l.TicketPrice {
		return fmt.Errorf("%w: attached %d, ticket price %d", ErrInsufficientPayment, attached, l.TicketPrice)
	}
	return nil
}

// PickWinner deterministically selects one participant. The participants must
// be given in enrollment order; the same seed and the same order always pick
// the same account.
func (l *Lottery) PickWinner(participants []AccountID) (AccountID, error) {
	if len(participants) == 0 {
		return "", ErrNoParticipants
	}

	rng := rand.New(rand.NewChaCha8(l.Seed))
	return participants[rng.IntN(len(participants))], nil
}

// Resolve records the outcome. Callers must check IsResolved first.
func (l *Lottery) Resolve(winner AccountID, payout int64) {
	l.WinnerID = &winner
	l.Payout = &payout
	now := time.Now()
	l.ResolvedAt = &now
}

// ComputePayout returns attached * (participantCount - 1)
func ComputePayout(attached int64, participantCount int) (int64, error) {
	if attached < 0 {
		return 0, ErrInvalidAmount
	}
	if participantCount <= 1 || attached == 0 {
		return 0, nil
	}

	others := int64(participantCount - 1)
	if attached > math.MaxInt64/others {
		return 0, fmt.Errorf("%w: payout overflows", ErrInvalidAmount)
	}
	return attached * others, nil
}

// LotteryParticipant is one distinct account enrolled in a lottery
type LotteryParticipant struct {
	LotteryID  int64     `db:"lottery_id"`
	Account    AccountID `db:"account"`
	Position   int64     `db:"position"` // enrollment order, used for the draw
	Attached   int64     `db:"attached"`
	EnrolledAt time.Time `db:"enrolled_at"`
}

// ParticipantAccounts returns the accounts in the order given
func ParticipantAccounts(participants []*LotteryParticipant) []AccountID {
	accounts := make([]AccountID, 0, len(participants))
	for _, p := range participants {
		accounts = append(accounts, p.Account)
	}
	return accounts
}
