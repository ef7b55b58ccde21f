package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type FeedbackService struct {
	repo repository.FeedbackRepositoryI
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepositoryI) *FeedbackService {
	if feedbackRepo == nil {
		log.Fatal("provided nil feedbackRepo")
	}
	return &FeedbackService{
		repo: feedbackRepo,
	}
}

// SaveAll persists generated guidance messages in their evaluation order.
func (fs *FeedbackService) SaveAll(ctx context.Context, messages []*entity.MotivationalFeedback) ([]*entity.MotivationalFeedback, error) {
	saved := make([]*entity.MotivationalFeedback, 0, len(messages))
	for _, m := range messages {
		result, err := fs.repo.Create(ctx, m)
		if err != nil {
			if errors.Is(err, errorvalues.ErrOwnerNotFound) {
				return nil, errorvalues.ErrUserNotFound
			}
			return nil, errors.New("feedback repository error: " + err.Error())
		}
		saved = append(saved, result)
	}
	return saved, nil
}

func (fs *FeedbackService) ListUnread(ctx context.Context, uid uuid.UUID) ([]*entity.MotivationalFeedback, error) {
	feedback, err := fs.repo.GetUnread(ctx, uid)
	if err != nil {
		return nil, errors.New("feedback repository error: " + err.Error())
	}
	return feedback, nil
}

func (fs *FeedbackService) MarkRead(ctx context.Context, id, uid uuid.UUID) (*entity.MotivationalFeedback, error) {
	feedback, err := fs.repo.MarkRead(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFeedbackNotFound) {
			return nil, err
		}
		return nil, errors.New("feedback repository error: " + err.Error())
	}
	return feedback, nil
}
