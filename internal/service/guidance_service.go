package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type GuidanceService struct {
	usersRepo repository.UsersRepositoryI
	progress  ProgressServiceI
}

func NewGuidanceService(usersRepo repository.UsersRepositoryI, progress ProgressServiceI) *GuidanceService {
	if usersRepo == nil || progress == nil {
		log.Fatal("on guidance service provided nil deps")
	}
	return &GuidanceService{
		usersRepo: usersRepo,
		progress:  progress,
	}
}

// GenerateStrategicGuidance runs a fixed, ordered rule list against the user's
// deadline and freshly computed stats. Every rule whose predicate holds fires
// into the output, in list order. Nothing remembers which rules fired before:
// identical conditions produce identical messages again. The method is
// read-only; persisting the result is up to the caller.
func (gs *GuidanceService) GenerateStrategicGuidance(ctx context.Context, uid uuid.UUID) ([]*entity.MotivationalFeedback, error) {
	user, err := gs.usersRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, err
		}
		return nil, errors.New("users repository error: " + err.Error())
	}
	messages := make([]*entity.MotivationalFeedback, 0)
	if user.Deadline == nil {
		return messages, nil
	}
	stats, err := gs.progress.GetProgressStats(ctx, uid)
	if err != nil {
		return nil, errors.New("computing progress stats error: " + err.Error())
	}

	daysUntilDeadline := int(math.Ceil(user.Deadline.Sub(time.Now()).Hours() / 24))

	// Deadline proximity: only the tighter threshold fires.
	if daysUntilDeadline <= 30 {
		messages = append(messages, &entity.MotivationalFeedback{
			UserID:       uid,
			FeedbackType: entity.FeedbackWarning,
			Priority:     entity.PriorityHigh,
			Title:        "Final Push Required",
			Message:      fmt.Sprintf("Only %d days left until your deadline. Prioritize applications and interview prep.", daysUntilDeadline),
		})
	} else if daysUntilDeadline <= 60 {
		messages = append(messages, &entity.MotivationalFeedback{
			UserID:       uid,
			FeedbackType: entity.FeedbackGuidance,
			Priority:     entity.PriorityMedium,
			Title:        "Midpoint Check",
			Message:      fmt.Sprintf("%d days remain. Review your goals and adjust your weekly targets.", daysUntilDeadline),
		})
	}
	if stats.AverageDailyApplications < 2 {
		messages = append(messages, &entity.MotivationalFeedback{
			UserID:       uid,
			FeedbackType: entity.FeedbackGuidance,
			Priority:     entity.PriorityMedium,
			Title:        "Increase Application Rate",
			Message:      fmt.Sprintf("You average %.1f applications per day. Aim for at least 2 to stay on track.", stats.AverageDailyApplications),
		})
	}
	if stats.AverageDailyCoding < 2 {
		messages = append(messages, &entity.MotivationalFeedback{
			UserID:       uid,
			FeedbackType: entity.FeedbackGuidance,
			Priority:     entity.PriorityMedium,
			Title:        "Boost Coding Time",
			Message:      fmt.Sprintf("You average %.1f coding hours per day. Try to reach 2 hours to keep skills sharp.", stats.AverageDailyCoding),
		})
	}
	if stats.CurrentStreak >= 7 {
		messages = append(messages, &entity.MotivationalFeedback{
			UserID:       uid,
			FeedbackType: entity.FeedbackCelebration,
			Priority:     entity.PriorityLow,
			Title:        "Amazing Consistency!",
			Message:      fmt.Sprintf("You've been active %d days in a row. Keep the momentum going!", stats.CurrentStreak),
		})
	}
	if stats.GoalsCompleted > 0 {
		messages = append(messages, &entity.MotivationalFeedback{
			UserID:       uid,
			FeedbackType: entity.FeedbackCelebration,
			Priority:     entity.PriorityLow,
			Title:        "Goal Achievement",
			Message:      fmt.Sprintf("You've completed %d goal(s). Great work turning plans into results!", stats.GoalsCompleted),
		})
	}
	return messages, nil
}
