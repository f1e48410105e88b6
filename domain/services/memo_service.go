package services

import (
	"context"
	"fmt"

	"tokenlotto/domain/entities"
	"tokenlotto/domain/interfaces"
	"tokenlotto/events"

	log "github.com/sirupsen/logrus"
)

type memoService struct {
	memoRepo       interfaces.MemoRepository
	eventPublisher interfaces.EventPublisher
}

// NewMemoService creates a new memo service
func NewMemoService(memoRepo interfaces.MemoRepository, eventPublisher interfaces.EventPublisher) interfaces.MemoService {
	return &memoService{
		memoRepo:       memoRepo,
		eventPublisher: eventPublisher,
	}
}

func (s *memoService) Store(ctx context.Context, account entities.AccountID, data string) error {
	if err := entities.ValidateMemo(data); err != nil {
		return err
	}

	if err := s.memoRepo.Upsert(ctx, &entities.Memo{Account: account, Data: data}); err != nil {
		return fmt.Errorf("failed to store memo: %w", err)
	}

	event := events.MemoStoredEvent{Account: account, Length: len(data)}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish memo stored event")
	}
	return nil
}

func (s *memoService) Get(ctx context.Context, account entities.AccountID) (string, bool, error) {
	memo, err := s.memoRepo.Get(ctx, account)
	if err != nil {
		return "", false, fmt.Errorf("failed to get memo: %w", err)
	}
	if memo == nil {
		return "", false, nil
	}
	return memo.Data, true, nil
}
