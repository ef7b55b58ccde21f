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

type AchievementsService struct {
	repo repository.AchievementsRepositoryI
}

func NewAchievementsService(achievementsRepo repository.AchievementsRepositoryI) *AchievementsService {
	if achievementsRepo == nil {
		log.Fatal("provided nil achievementsRepo")
	}
	return &AchievementsService{
		repo: achievementsRepo,
	}
}

// CreateAchievement records an unlock. It carries no dedup logic; callers
// decide when an event deserves exactly one record.
func (as *AchievementsService) CreateAchievement(ctx context.Context, uid uuid.UUID, title, description, achievementType string, icon *string, metadata []byte) (*entity.Achievement, error) {
	a := entity.Achievement{
		UserID:          uid,
		Title:           title,
		Description:     description,
		AchievementType: achievementType,
		Icon:            icon,
		Metadata:        metadata,
	}
	result, err := as.repo.Create(ctx, &a)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("achievements repository error: " + err.Error())
	}
	return result, nil
}

func (as *AchievementsService) ListAchievements(ctx context.Context, uid uuid.UUID) ([]*entity.Achievement, error) {
	achievements, err := as.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("achievements repository error: " + err.Error())
	}
	return achievements, nil
}
