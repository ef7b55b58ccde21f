package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/momentum/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

// LogActivityRequest carries whatever the transport accepted. Range checks on
// the numeric fields belong to the boundary, not the engine.
type LogActivityRequest struct {
	Date                  time.Time
	CodingMinutes         int
	ApplicationsSubmitted int
	LearningMinutes       int
	Notes                 *string
	Challenges            *string
	Achievements          *string
	Mood                  *string
	EnergyLevel           *int
	Productivity          *int
}

type CreateGoalRequest struct {
	Title       string  `validate:"required,min=1,max=255"`
	Description string  `validate:"max=2000"`
	GoalType    string  `validate:"omitempty,oneof=weekly monthly custom"`
	TargetValue float64 `validate:"required,gt=0"`
	Unit        string  `validate:"required,max=50"`
	StartDate   time.Time
	EndDate     time.Time `validate:"required"`
	Priority    string    `validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Sets or clears the user's job-search deadline used by guidance
	SetDeadline(ctx context.Context, id uuid.UUID, deadline *time.Time) error
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type ActivityServiceI interface {
	// Upserts the log for (user, date), fully replacing mutable fields on repeat
	LogDailyActivity(ctx context.Context, uid uuid.UUID, req *LogActivityRequest) (*entity.DailyLog, error)
	// Inclusive range read in ascending date order; empty slice when none exist
	GetDailyLogs(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.DailyLog, error)
}

type GoalsServiceI interface {
	CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (*entity.Goal, error)
	// ACTIVE goals ordered by priority descending, then soonest end date
	GetActiveGoals(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error)
	// Persists progress; unlocks a completion achievement on the ACTIVE->COMPLETED transition
	UpdateGoalProgress(ctx context.Context, goalID, uid uuid.UUID, value float64) (*entity.Goal, error)
}

type AchievementsServiceI interface {
	CreateAchievement(ctx context.Context, uid uuid.UUID, title, description, achievementType string, icon *string, metadata []byte) (*entity.Achievement, error)
	ListAchievements(ctx context.Context, uid uuid.UUID) ([]*entity.Achievement, error)
}

type ProgressServiceI interface {
	// Aggregates the 30-day stats bundle, computed fresh on every call
	GetProgressStats(ctx context.Context, uid uuid.UUID) (*entity.ProgressStats, error)
}

type GuidanceServiceI interface {
	// Evaluates the fixed rule list; empty (not an error) when the user has no deadline.
	// Read-only: persisting the produced messages is the caller's job.
	GenerateStrategicGuidance(ctx context.Context, uid uuid.UUID) ([]*entity.MotivationalFeedback, error)
}

type FeedbackServiceI interface {
	SaveAll(ctx context.Context, messages []*entity.MotivationalFeedback) ([]*entity.MotivationalFeedback, error)
	ListUnread(ctx context.Context, uid uuid.UUID) ([]*entity.MotivationalFeedback, error)
	MarkRead(ctx context.Context, id, uid uuid.UUID) (*entity.MotivationalFeedback, error)
}
