package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

type GoalsService struct {
	goalsRepo repository.GoalsRepositoryI
	unlocker  AchievementsServiceI
}

func NewGoalsService(goalsRepo repository.GoalsRepositoryI, unlocker AchievementsServiceI) *GoalsService {
	if goalsRepo == nil || unlocker == nil {
		log.Fatal("on goals service provided nil deps")
	}
	return &GoalsService{
		goalsRepo: goalsRepo,
		unlocker:  unlocker,
	}
}

func (gs *GoalsService) CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (*entity.Goal, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	goal := entity.Goal{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Priority:    req.Priority,
	}
	if goal.GoalType == "" {
		goal.GoalType = "custom"
	}
	if goal.Priority == "" {
		goal.Priority = entity.PriorityMedium
	}
	if goal.StartDate.IsZero() {
		goal.StartDate = time.Now()
	}
	result, err := gs.goalsRepo.Create(ctx, &goal)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return result, nil
}

func (gs *GoalsService) GetActiveGoals(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error) {
	goals, err := gs.goalsRepo.GetActive(ctx, uid)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goals, nil
}

// UpdateGoalProgress persists the reported value and, when this call is the
// one that moves the goal into COMPLETED, unlocks a completion achievement.
// The repository decides the transition under a row lock, so repeated reports
// at or above target unlock at most once.
func (gs *GoalsService) UpdateGoalProgress(ctx context.Context, goalID, uid uuid.UUID, value float64) (*entity.Goal, error) {
	goal, err := gs.goalsRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != uid {
		return nil, errorvalues.ErrWrongOwner
	}
	updated, completedNow, err := gs.goalsRepo.UpdateProgress(ctx, goalID, value)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if completedNow {
		metadata, _ := sonic.Marshal(map[string]any{
			"goal_id":      updated.ID.String(),
			"target_value": updated.TargetValue,
			"unit":         updated.Unit,
		})
		_, err = gs.unlocker.CreateAchievement(ctx, uid,
			"Goal Completed: "+updated.Title,
			fmt.Sprintf("Reached %v %s", updated.TargetValue, updated.Unit),
			"completion", nil, metadata,
		)
		if err != nil {
			return nil, errors.New("unlocking completion achievement error: " + err.Error())
		}
	}
	return updated, nil
}
