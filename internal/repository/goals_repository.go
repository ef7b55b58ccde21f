package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

type GoalsRepository struct {
	conn PgConnection
}

func NewGoalsRepo(cfg DBConfig) *GoalsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for goalsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &GoalsRepository{
		conn: pool,
	}
}

func NewGoalsRepoWithConn(conn PgConnection) *GoalsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	return &GoalsRepository{
		conn: conn,
	}
}

const goalColumns = `id, user_id, title, description, goal_type, target_value, current_value,
		unit, start_date, end_date, status, priority, created_at, updated_at`

func scanGoal(row pgx.Row) (*entity.Goal, error) {
	var g entity.Goal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Description, &g.GoalType, &g.TargetValue,
		&g.CurrentValue, &g.Unit, &g.StartDate, &g.EndDate, &g.Status, &g.Priority,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (gr *GoalsRepository) Create(ctx context.Context, goal *entity.Goal) (*entity.Goal, error) {
	row := gr.conn.QueryRow(ctx,
		`INSERT INTO goals (user_id, title, description, goal_type, target_value, unit, start_date, end_date, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+goalColumns+`;`,
		goal.UserID, goal.Title, goal.Description, goal.GoalType, goal.TargetValue,
		goal.Unit, goal.StartDate, goal.EndDate, goal.Priority,
	)
	result, err := scanGoal(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating goal db error: " + err.Error())
	}
	return result, nil
}

func (gr *GoalsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	row := gr.conn.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1;`, id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrGoalNotFound
		}
		return nil, errors.New("getting goal by id error: " + err.Error())
	}
	return goal, nil
}

func (gr *GoalsRepository) GetActive(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error) {
	rows, err := gr.conn.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 AND status = 'ACTIVE'
		ORDER BY CASE priority
			WHEN 'CRITICAL' THEN 4
			WHEN 'HIGH' THEN 3
			WHEN 'MEDIUM' THEN 2
			ELSE 1
		END DESC, end_date ASC;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting active goals error: " + err.Error())
	}
	defer rows.Close()
	return collectGoals(rows)
}

func (gr *GoalsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Goal, error) {
	rows, err := gr.conn.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY created_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting goals by uid error: " + err.Error())
	}
	defer rows.Close()
	return collectGoals(rows)
}

func collectGoals(rows pgx.Rows) ([]*entity.Goal, error) {
	goals := make([]*entity.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, errors.New("goal row parsing error: " + err.Error())
		}
		goals = append(goals, g)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected goal rows error: " + rows.Err().Error())
	}
	return goals, nil
}

// UpdateProgress locks the goal row, writes the new value and derived status,
// and reports whether this exact call crossed the completion threshold.
// Completion is one-way: a value back under target leaves status COMPLETED.
func (gr *GoalsRepository) UpdateProgress(ctx context.Context, id uuid.UUID, value float64) (*entity.Goal, bool, error) {
	tx, err := gr.conn.Begin(ctx)
	if err != nil {
		return nil, false, errors.New("starting goal update tx error: " + err.Error())
	}

	row := tx.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1 FOR UPDATE;`, id)
	goal, err := scanGoal(row)
	if err != nil {
		tx.Rollback(ctx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, errorvalues.ErrGoalNotFound
		}
		return nil, false, errors.New("locking goal for update error: " + err.Error())
	}

	newStatus := goal.Status
	completedNow := false
	if value >= goal.TargetValue && goal.Status != entity.GoalStatusCompleted {
		newStatus = entity.GoalStatusCompleted
		completedNow = true
	}

	row = tx.QueryRow(ctx,
		`UPDATE goals SET current_value = $1, status = $2, updated_at = NOW() WHERE id = $3
		RETURNING `+goalColumns+`;`,
		value, newStatus, id,
	)
	updated, err := scanGoal(row)
	if err != nil {
		tx.Rollback(ctx)
		return nil, false, errors.New("updating goal progress error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, false, errors.New("committing goal update error: " + err.Error())
	}
	return updated, completedNow, nil
}

func (gr *GoalsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := gr.conn.Exec(ctx, `DELETE FROM goals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting goal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}
