package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type ActivityService struct {
	logsRepo repository.DailyLogsRepositoryI
}

func NewActivityService(logsRepo repository.DailyLogsRepositoryI) *ActivityService {
	if logsRepo == nil {
		log.Fatal("provided nil logsRepo")
	}
	return &ActivityService{
		logsRepo: logsRepo,
	}
}

// LogDailyActivity keeps exactly one log per (user, calendar day). A repeated
// report for the same day replaces every mutable field, it never accumulates.
// Numeric ranges are the transport layer's problem: atypical values pass
// through untouched.
func (as *ActivityService) LogDailyActivity(ctx context.Context, uid uuid.UUID, req *LogActivityRequest) (*entity.DailyLog, error) {
	logEntry := entity.DailyLog{
		UserID:                uid,
		LogDate:               DateOnly(req.Date),
		CodingMinutes:         req.CodingMinutes,
		ApplicationsSubmitted: req.ApplicationsSubmitted,
		LearningMinutes:       req.LearningMinutes,
		Notes:                 req.Notes,
		Challenges:            req.Challenges,
		Achievements:          req.Achievements,
		Mood:                  req.Mood,
		EnergyLevel:           req.EnergyLevel,
		Productivity:          req.Productivity,
	}
	result, err := as.logsRepo.Upsert(ctx, &logEntry)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("daily logs repository error: " + err.Error())
	}
	return result, nil
}

func (as *ActivityService) GetDailyLogs(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.DailyLog, error) {
	logs, err := as.logsRepo.GetByUserAndDateRange(ctx, uid, DateOnly(from), DateOnly(to))
	if err != nil {
		return nil, errors.New("daily logs repository error: " + err.Error())
	}
	return logs, nil
}
