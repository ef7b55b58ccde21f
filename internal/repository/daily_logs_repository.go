package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/entity"
)

type DailyLogsRepository struct {
	conn PgConnection
}

func NewDailyLogsRepo(cfg DBConfig) *DailyLogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for dailyLogsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for dailyLogsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &DailyLogsRepository{
		conn: pool,
	}
}

func NewDailyLogsRepoWithConn(conn PgConnection) *DailyLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for dailyLogsRepo: " + err.Error())
	}
	return &DailyLogsRepository{
		conn: conn,
	}
}

const dailyLogColumns = `id, user_id, log_date, coding_minutes, applications_submitted, learning_minutes,
		notes, challenges, achievements, mood, energy_level, productivity, created_at, updated_at`

func scanDailyLog(row pgx.Row) (*entity.DailyLog, error) {
	var l entity.DailyLog
	err := row.Scan(&l.ID, &l.UserID, &l.LogDate, &l.CodingMinutes, &l.ApplicationsSubmitted,
		&l.LearningMinutes, &l.Notes, &l.Challenges, &l.Achievements, &l.Mood,
		&l.EnergyLevel, &l.Productivity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (lr *DailyLogsRepository) Upsert(ctx context.Context, logEntry *entity.DailyLog) (*entity.DailyLog, error) {
	row := lr.conn.QueryRow(ctx,
		`INSERT INTO daily_logs (user_id, log_date, coding_minutes, applications_submitted, learning_minutes,
			notes, challenges, achievements, mood, energy_level, productivity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, log_date) DO UPDATE SET
			coding_minutes = EXCLUDED.coding_minutes,
			applications_submitted = EXCLUDED.applications_submitted,
			learning_minutes = EXCLUDED.learning_minutes,
			notes = EXCLUDED.notes,
			challenges = EXCLUDED.challenges,
			achievements = EXCLUDED.achievements,
			mood = EXCLUDED.mood,
			energy_level = EXCLUDED.energy_level,
			productivity = EXCLUDED.productivity,
			updated_at = NOW()
		RETURNING `+dailyLogColumns+`;`,
		logEntry.UserID, logEntry.LogDate, logEntry.CodingMinutes, logEntry.ApplicationsSubmitted,
		logEntry.LearningMinutes, logEntry.Notes, logEntry.Challenges, logEntry.Achievements,
		logEntry.Mood, logEntry.EnergyLevel, logEntry.Productivity,
	)
	result, err := scanDailyLog(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("upserting daily log error: " + err.Error())
	}
	return result, nil
}

func (lr *DailyLogsRepository) FindByUserAndDate(ctx context.Context, uid uuid.UUID, date time.Time) (*entity.DailyLog, error) {
	row := lr.conn.QueryRow(ctx,
		`SELECT `+dailyLogColumns+` FROM daily_logs WHERE user_id = $1 AND log_date = $2;`,
		uid, date,
	)
	result, err := scanDailyLog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrLogNotFound
		}
		return nil, errors.New("searching daily log error: " + err.Error())
	}
	return result, nil
}

func (lr *DailyLogsRepository) GetByUserAndDateRange(ctx context.Context, uid uuid.UUID, from, to time.Time) ([]*entity.DailyLog, error) {
	rows, err := lr.conn.Query(ctx,
		`SELECT `+dailyLogColumns+` FROM daily_logs
		WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3 ORDER BY log_date ASC;`,
		uid, from, to,
	)
	if err != nil {
		return nil, errors.New("getting daily logs for period error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.DailyLog, 0)
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, errors.New("daily log row parsing error: " + err.Error())
		}
		result = append(result, l)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected daily log rows error: " + rows.Err().Error())
	}
	return result, nil
}
