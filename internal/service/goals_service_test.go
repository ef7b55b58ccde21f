package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
	"github.com/stretchr/testify/assert"
)

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateGoalNotFound
	stateUserNotFound
	stateWrongOwner
	stateCompletesNow
	stateAlreadyCompleted
)

var (
	ownerID  = uuid.New()
	goalID   = uuid.New()
	testGoal = entity.Goal{
		ID:          goalID,
		UserID:      ownerID,
		Title:       "Submit applications",
		Description: "steady submission pace",
		GoalType:    "weekly",
		TargetValue: 10,
		Unit:        "applications",
		StartDate:   time.Now(),
		EndDate:     time.Now().AddDate(0, 1, 0),
		Status:      entity.GoalStatusActive,
		Priority:    entity.PriorityHigh,
	}
)

type goalsRepoMock struct {
	state           mockState
	lastValue       float64
	updateCallCount int
}

func (grmock *goalsRepoMock) Create(ctx context.Context, goal *entity.Goal) (*entity.Goal, error) {
	switch grmock.state {
	case stateUserNotFound:
		return nil, errorvalues.ErrOwnerNotFound
	case stateDBError:
		return nil, errors.New("db error")
	default:
		created := *goal
		created.ID = goalID
		created.Status = entity.GoalStatusActive
		return &created, nil
	}
}

func (grmock *goalsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	switch grmock.state {
	case stateGoalNotFound:
		return nil, errorvalues.ErrGoalNotFound
	case stateDBError:
		return nil, errors.New("db error")
	case stateWrongOwner:
		g := testGoal
		g.UserID = uuid.New()
		return &g, nil
	default:
		g := testGoal
		return &g, nil
	}
}

func (grmock *goalsRepoMock) GetActive(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error) {
	switch grmock.state {
	case stateDBError:
		return nil, errors.New("db error")
	default:
		g := testGoal
		return []*entity.Goal{&g}, nil
	}
}

func (grmock *goalsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error) {
	g := testGoal
	return []*entity.Goal{&g}, nil
}

func (grmock *goalsRepoMock) UpdateProgress(ctx context.Context, id uuid.UUID, value float64) (*entity.Goal, bool, error) {
	grmock.updateCallCount++
	grmock.lastValue = value
	switch grmock.state {
	case stateGoalNotFound:
		return nil, false, errorvalues.ErrGoalNotFound
	case stateDBError:
		return nil, false, errors.New("db error")
	case stateCompletesNow:
		g := testGoal
		g.CurrentValue = value
		g.Status = entity.GoalStatusCompleted
		// completion fires only on the first crossing
		completedNow := grmock.updateCallCount == 1
		return &g, completedNow, nil
	case stateAlreadyCompleted:
		g := testGoal
		g.CurrentValue = value
		g.Status = entity.GoalStatusCompleted
		return &g, false, nil
	default:
		g := testGoal
		g.CurrentValue = value
		return &g, false, nil
	}
}

func (grmock *goalsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type unlockerMock struct {
	fail      bool
	callCount int
	lastTitle string
}

func (umock *unlockerMock) CreateAchievement(ctx context.Context, uid uuid.UUID, title, description, achievementType string, icon *string, metadata []byte) (*entity.Achievement, error) {
	if umock.fail {
		return nil, errors.New("db error")
	}
	umock.callCount++
	umock.lastTitle = title
	return &entity.Achievement{
		ID:              uuid.New(),
		UserID:          uid,
		Title:           title,
		Description:     description,
		AchievementType: achievementType,
		UnlockedAt:      time.Now(),
	}, nil
}

func (umock *unlockerMock) ListAchievements(ctx context.Context, uid uuid.UUID) ([]*entity.Achievement, error) {
	return []*entity.Achievement{}, nil
}

func TestCreateGoal(t *testing.T) {
	service.InitValidator()
	repo := &goalsRepoMock{state: stateSuccess}
	s := service.NewGoalsService(repo, &unlockerMock{})
	ctx := context.Background()
	t.Run("success with defaults", func(t *testing.T) {
		goal, err := s.CreateGoal(ctx, ownerID, &service.CreateGoalRequest{
			Title:       "Ship portfolio",
			TargetValue: 1,
			Unit:        "site",
			EndDate:     time.Now().AddDate(0, 2, 0),
		})
		assert.NoError(t, err)
		assert.Equal(t, entity.GoalStatusActive, goal.Status)
		assert.Equal(t, entity.PriorityMedium, goal.Priority)
		assert.Equal(t, "custom", goal.GoalType)
		assert.False(t, goal.StartDate.IsZero())
	})
	t.Run("validation error", func(t *testing.T) {
		_, err := s.CreateGoal(ctx, ownerID, &service.CreateGoalRequest{
			TargetValue: 0,
			Unit:        "site",
			EndDate:     time.Now().AddDate(0, 2, 0),
		})
		assert.Error(t, err)
	})
	t.Run("owner not found", func(t *testing.T) {
		repo.state = stateUserNotFound
		_, err := s.CreateGoal(ctx, ownerID, &service.CreateGoalRequest{
			Title:       "Ship portfolio",
			TargetValue: 1,
			Unit:        "site",
			EndDate:     time.Now().AddDate(0, 2, 0),
		})
		assert.ErrorIs(t, err, errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		repo.state = stateDBError
		_, err := s.CreateGoal(ctx, ownerID, &service.CreateGoalRequest{
			Title:       "Ship portfolio",
			TargetValue: 1,
			Unit:        "site",
			EndDate:     time.Now().AddDate(0, 2, 0),
		})
		assert.Error(t, err)
	})
}

func TestGetActiveGoals(t *testing.T) {
	repo := &goalsRepoMock{state: stateSuccess}
	s := service.NewGoalsService(repo, &unlockerMock{})
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		goals, err := s.GetActiveGoals(ctx, ownerID)
		assert.NoError(t, err)
		assert.Len(t, goals, 1)
	})
	t.Run("db error", func(t *testing.T) {
		repo.state = stateDBError
		_, err := s.GetActiveGoals(ctx, ownerID)
		assert.Error(t, err)
	})
}

func TestUpdateGoalProgress(t *testing.T) {
	ctx := context.Background()
	t.Run("progress without completion", func(t *testing.T) {
		repo := &goalsRepoMock{state: stateSuccess}
		unlocker := &unlockerMock{}
		s := service.NewGoalsService(repo, unlocker)
		goal, err := s.UpdateGoalProgress(ctx, goalID, ownerID, 4)
		assert.NoError(t, err)
		assert.Equal(t, float64(4), goal.CurrentValue)
		assert.Equal(t, entity.GoalStatusActive, goal.Status)
		assert.Equal(t, 0, unlocker.callCount)
	})
	t.Run("completion unlocks exactly one achievement", func(t *testing.T) {
		repo := &goalsRepoMock{state: stateCompletesNow}
		unlocker := &unlockerMock{}
		s := service.NewGoalsService(repo, unlocker)
		goal, err := s.UpdateGoalProgress(ctx, goalID, ownerID, 12)
		assert.NoError(t, err)
		assert.Equal(t, entity.GoalStatusCompleted, goal.Status)
		assert.Equal(t, 1, unlocker.callCount)
		assert.Equal(t, "Goal Completed: "+testGoal.Title, unlocker.lastTitle)

		// the second report at or above target must not unlock again
		_, err = s.UpdateGoalProgress(ctx, goalID, ownerID, 15)
		assert.NoError(t, err)
		assert.Equal(t, 1, unlocker.callCount)
	})
	t.Run("already completed goal never re-unlocks", func(t *testing.T) {
		repo := &goalsRepoMock{state: stateAlreadyCompleted}
		unlocker := &unlockerMock{}
		s := service.NewGoalsService(repo, unlocker)
		_, err := s.UpdateGoalProgress(ctx, goalID, ownerID, 100)
		assert.NoError(t, err)
		assert.Equal(t, 0, unlocker.callCount)
	})
	t.Run("goal not found", func(t *testing.T) {
		repo := &goalsRepoMock{state: stateGoalNotFound}
		s := service.NewGoalsService(repo, &unlockerMock{})
		_, err := s.UpdateGoalProgress(ctx, goalID, ownerID, 4)
		assert.ErrorIs(t, err, errorvalues.ErrGoalNotFound)
	})
	t.Run("wrong owner", func(t *testing.T) {
		repo := &goalsRepoMock{state: stateWrongOwner}
		s := service.NewGoalsService(repo, &unlockerMock{})
		_, err := s.UpdateGoalProgress(ctx, goalID, ownerID, 4)
		assert.ErrorIs(t, err, errorvalues.ErrWrongOwner)
	})
	t.Run("unlock failure surfaces", func(t *testing.T) {
		repo := &goalsRepoMock{state: stateCompletesNow}
		s := service.NewGoalsService(repo, &unlockerMock{fail: true})
		_, err := s.UpdateGoalProgress(ctx, goalID, ownerID, 12)
		assert.Error(t, err)
	})
}
