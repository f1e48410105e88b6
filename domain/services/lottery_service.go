package services

import (
	"context"
	"fmt"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/events"

	log "github.com/sirupsen/logrus"
)

// lotteryService implements business logic for lottery operations
type lotteryService struct {
	lotteryRepo     interfaces.LotteryRepository
	participantRepo interfaces.LotteryParticipantRepository
	entropy         entities.EntropySource
	eventPublisher  interfaces.EventPublisher
}

// NewLotteryService creates a new lottery service
func NewLotteryService(
	lotteryRepo interfaces.LotteryRepository,
	participantRepo interfaces.LotteryParticipantRepository,
	entropy entities.EntropySource,
	eventPublisher interfaces.EventPublisher,
) interfaces.LotteryService {
	return &lotteryService{
		lotteryRepo:     lotteryRepo,
		participantRepo: participantRepo,
		entropy:         entropy,
		eventPublisher:  eventPublisher,
	}
}

// Construct opens a new lottery with a freshly captured seed
func (s *lotteryService) Construct(ctx context.Context, ticketPrice int64) (*entities.Lottery, error) {
	lottery, err := entities.NewLottery(ticketPrice, s.entropy)
	if err != nil {
		return nil, err
	}

	if err := s.lotteryRepo.Create(ctx, lottery); err != nil {
		return nil, fmt.Errorf("failed to create lottery: %w", err)
	}

	log.WithFields(log.Fields{
		"lotteryID":   lottery.ID,
		"ticketPrice": lottery.TicketPrice,
	}).Info("Lottery constructed")

	return lottery, nil
}

// Enroll adds caller to the participant set. Enrolling twice is a no-op.
func (s *lotteryService) Enroll(ctx context.Context, lotteryID int64, caller entities.AccountID, attached int64) (*interfaces.EnrollResult, error) {
	lottery, err := s.lockLottery(ctx, lotteryID)
	if err != nil {
		return nil, err
	}

	if err := lottery.CheckEnrollment(attached); err != nil {
		return nil, err
	}

	added, err := s.participantRepo.Add(ctx, &entities.LotteryParticipant{
		LotteryID: lottery.ID,
		Account:   caller,
		Attached:  attached,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	count, err := s.participantRepo.Count(ctx, lottery.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	if added {
		s.publish(events.LotteryEnrolledEvent{
			LotteryID:        lottery.ID,
			Account:          caller,
			Attached:         attached,
			ParticipantCount: count,
		})
	}

	log.WithFields(log.Fields{
		"lotteryID":        lottery.ID,
		"account":          caller,
		"alreadyEnrolled":  !added,
		"participantCount": count,
	}).Debug("Lottery enrollment processed")

	return &interfaces.EnrollResult{
		Lottery:          lottery,
		AlreadyEnrolled:  !added,
		ParticipantCount: count,
	}, nil
}

// Draw picks the winner from the seed and resolves the lottery
func (s *lotteryService) Draw(ctx context.Context, lotteryID int64, attached int64) (*interfaces.DrawResult, error) {
	lottery, err := s.lockLottery(ctx, lotteryID)
	if err != nil {
		return nil, err
	}

	if lottery.IsResolved() {
		return nil, entities.ErrAlreadyResolved
	}

	participants, err := s.participantRepo.ListByLottery(ctx, lottery.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	accounts := entities.ParticipantAccounts(participants)
	winner, err := lottery.PickWinner(accounts)
	if err != nil {
		return nil, err
	}

	payout, err := entities.ComputePayout(attached, len(accounts))
	if err != nil {
		return nil, err
	}

	lottery.Resolve(winner, payout)
	if err := s.lotteryRepo.Update(ctx, lottery); err != nil {
		return nil, fmt.Errorf("failed to resolve lottery: %w", err)
	}

	s.publish(events.LotteryResolvedEvent{
		LotteryID:        lottery.ID,
		Winner:           winner,
		Payout:           payout,
		ParticipantCount: len(accounts),
	})

	log.WithFields(log.Fields{
		"lotteryID":        lottery.ID,
		"winner":           winner,
		"payout":           payout,
		"participantCount": len(accounts),
	}).Info("Lottery resolved")

	return &interfaces.DrawResult{
		Lottery:          lottery,
		Winner:           winner,
		Payout:           payout,
		ParticipantCount: len(accounts),
		Directive:        entities.NewPaymentDirective(winner, payout, entities.PaymentReasonLotteryPayout),
	}, nil
}

// Get returns the lottery by ID
func (s *lotteryService) Get(ctx context.Context, lotteryID int64) (*entities.Lottery, error) {
	lottery, err := s.lotteryRepo.GetByID(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery: %w", err)
	}
	if lottery == nil {
		return nil, entities.ErrLotteryNotFound
	}
	return lottery, nil
}

// Current returns the newest open lottery
func (s *lotteryService) Current(ctx context.Context) (*entities.Lottery, error) {
	lottery, err := s.lotteryRepo.GetCurrentOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current lottery: %w", err)
	}
	if lottery == nil {
		return nil, entities.ErrLotteryNotFound
	}
	return lottery, nil
}

// Participants returns the participant set in enrollment order
func (s *lotteryService) Participants(ctx context.Context, lotteryID int64) ([]*entities.LotteryParticipant, error) {
	if _, err := s.Get(ctx, lotteryID); err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.ListByLottery(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (s *lotteryService) lockLottery(ctx context.Context, lotteryID int64) (*entities.Lottery, error) {
	lottery, err := s.lotteryRepo.GetByIDForUpdate(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery: %w", err)
	}
	if lottery == nil {
		return nil, entities.ErrLotteryNotFound
	}
	return lottery, nil
}

func (s *lotteryService) publish(event events.Event) {
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to publish event")
	}
}
