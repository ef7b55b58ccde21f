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

type AchievementsRepository struct {
	conn PgConnection
}

func NewAchievementsRepo(cfg DBConfig) *AchievementsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for achievementsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for achievementsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &AchievementsRepository{
		conn: pool,
	}
}

func NewAchievementsRepoWithConn(conn PgConnection) *AchievementsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for achievementsRepo: " + err.Error())
	}
	return &AchievementsRepository{
		conn: conn,
	}
}

const achievementColumns = `id, user_id, title, description, achievement_type, icon, metadata, unlocked_at`

func scanAchievement(row pgx.Row) (*entity.Achievement, error) {
	var a entity.Achievement
	err := row.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.AchievementType,
		&a.Icon, &a.Metadata, &a.UnlockedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (ar *AchievementsRepository) Create(ctx context.Context, a *entity.Achievement) (*entity.Achievement, error) {
	row := ar.conn.QueryRow(ctx,
		`INSERT INTO achievements (user_id, title, description, achievement_type, icon, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+achievementColumns+`;`,
		a.UserID, a.Title, a.Description, a.AchievementType, a.Icon, a.Metadata,
	)
	result, err := scanAchievement(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating achievement db error: " + err.Error())
	}
	return result, nil
}

func (ar *AchievementsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Achievement, error) {
	rows, err := ar.conn.Query(ctx,
		`SELECT `+achievementColumns+` FROM achievements WHERE user_id = $1 ORDER BY unlocked_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting achievements by uid error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.Achievement, 0)
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, errors.New("achievement row parsing error: " + err.Error())
		}
		result = append(result, a)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected achievement rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (ar *AchievementsRepository) CountByUserID(ctx context.Context, uid uuid.UUID) (int, error) {
	row := ar.conn.QueryRow(ctx, `SELECT COUNT(*) FROM achievements WHERE user_id = $1;`, uid)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting achievements: " + err.Error())
	}
	return count, nil
}
