package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/momentum/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Sets or clears the user's job-search deadline
	UpdateDeadline(ctx context.Context, uid uuid.UUID, deadline *time.Time) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type DailyLogsRepositoryI interface {
	// Inserts the log for (user, date) or fully replaces its mutable fields
	Upsert(ctx context.Context, log *entity.DailyLog) (*entity.DailyLog, error)
	// Searches the log for the exact calendar date
	FindByUserAndDate(ctx context.Context, uid uuid.UUID, date time.Time) (*entity.DailyLog, error)
	// Provides logs for an inclusive date range in ascending date order
	GetByUserAndDateRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.DailyLog, error)
}

type GoalsRepositoryI interface {
	// Creates new goal. Status and current value are set by the repository
	Create(ctx context.Context, goal *entity.Goal) (*entity.Goal, error)
	// Searches goal with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Lists ACTIVE goals ordered by priority (CRITICAL first), then soonest end date
	GetActive(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error)
	// Lists all goals owned by user
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error)
	// Atomically sets current value and derives status inside one transaction.
	// Reports whether this call moved the goal into COMPLETED.
	UpdateProgress(ctx context.Context, id uuid.UUID, value float64) (*entity.Goal, bool, error)
	// Deletes goal with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type AchievementsRepositoryI interface {
	// Creates new achievement record
	Create(ctx context.Context, a *entity.Achievement) (*entity.Achievement, error)
	// Lists achievements of user, newest first
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Achievement, error)
	// Returns count of achievements unlocked by user
	CountByUserID(ctx context.Context, uid uuid.UUID) (int, error)
}

type FeedbackRepositoryI interface {
	// Creates new feedback message
	Create(ctx context.Context, f *entity.MotivationalFeedback) (*entity.MotivationalFeedback, error)
	// Lists unread, unexpired feedback of user, newest first
	GetUnread(ctx context.Context, uid uuid.UUID) ([]*entity.MotivationalFeedback, error)
	// Flips is_read to true on the user's own message
	MarkRead(ctx context.Context, id, uid uuid.UUID) (*entity.MotivationalFeedback, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
