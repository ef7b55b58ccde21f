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

type FeedbackRepository struct {
	conn PgConnection
}

func NewFeedbackRepo(cfg DBConfig) *FeedbackRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for feedbackRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for feedbackRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &FeedbackRepository{
		conn: pool,
	}
}

func NewFeedbackRepoWithConn(conn PgConnection) *FeedbackRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for feedbackRepo: " + err.Error())
	}
	return &FeedbackRepository{
		conn: conn,
	}
}

const feedbackColumns = `id, user_id, feedback_type, title, message, priority, is_read, expires_at, created_at`

func scanFeedback(row pgx.Row) (*entity.MotivationalFeedback, error) {
	var f entity.MotivationalFeedback
	err := row.Scan(&f.ID, &f.UserID, &f.FeedbackType, &f.Title, &f.Message,
		&f.Priority, &f.IsRead, &f.ExpiresAt, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (fr *FeedbackRepository) Create(ctx context.Context, f *entity.MotivationalFeedback) (*entity.MotivationalFeedback, error) {
	row := fr.conn.QueryRow(ctx,
		`INSERT INTO feedback (user_id, feedback_type, title, message, priority, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+feedbackColumns+`;`,
		f.UserID, f.FeedbackType, f.Title, f.Message, f.Priority, f.ExpiresAt,
	)
	result, err := scanFeedback(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return nil, errorvalues.ErrOwnerNotFound
			}
		}
		return nil, errors.New("creating feedback db error: " + err.Error())
	}
	return result, nil
}

func (fr *FeedbackRepository) GetUnread(ctx context.Context, uid uuid.UUID) ([]*entity.MotivationalFeedback, error) {
	rows, err := fr.conn.Query(ctx,
		`SELECT `+feedbackColumns+` FROM feedback
		WHERE user_id = $1 AND is_read = FALSE AND (expires_at IS NULL OR expires_at > NOW())
		ORDER BY created_at DESC;`,
		uid,
	)
	if err != nil {
		return nil, errors.New("getting unread feedback error: " + err.Error())
	}
	defer rows.Close()
	result := make([]*entity.MotivationalFeedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, errors.New("feedback row parsing error: " + err.Error())
		}
		result = append(result, f)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected feedback rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (fr *FeedbackRepository) MarkRead(ctx context.Context, id, uid uuid.UUID) (*entity.MotivationalFeedback, error) {
	row := fr.conn.QueryRow(ctx,
		`UPDATE feedback SET is_read = TRUE WHERE id = $1 AND user_id = $2 RETURNING `+feedbackColumns+`;`, id, uid)
	result, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrFeedbackNotFound
		}
		return nil, errors.New("marking feedback read error: " + err.Error())
	}
	return result, nil
}
