package api_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/limbo/momentum/internal/api"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
	jwtservice "github.com/limbo/momentum/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	uid      = uuid.New()
	username = "test_user"
	testUser = entity.User{
		ID:   uid,
		Name: username,
	}
)

type userServiceMock struct {
	success bool
}

func (usmock *userServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*entity.User, error) {
	if usmock.success {
		return &testUser, nil
	}
	return nil, errorvalues.ErrUserExists
}

func (usmock *userServiceMock) Login(ctx context.Context, name, password string) (*entity.User, error) {
	if usmock.success {
		return &testUser, nil
	}
	return nil, errorvalues.ErrWrongCredentials
}

func (usmock *userServiceMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if usmock.success {
		return &testUser, nil
	}
	return nil, errorvalues.ErrUserNotFound
}

func (usmock *userServiceMock) SetDeadline(ctx context.Context, id uuid.UUID, deadline *time.Time) error {
	if usmock.success {
		return nil
	}
	return errorvalues.ErrUserNotFound
}

func (usmock *userServiceMock) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	return nil
}

type activityServiceMock struct {
	success bool
}

func (asmock *activityServiceMock) LogDailyActivity(ctx context.Context, userID uuid.UUID, req *service.LogActivityRequest) (*entity.DailyLog, error) {
	if asmock.success {
		return &entity.DailyLog{
			ID:            1,
			UserID:        userID,
			LogDate:       req.Date,
			CodingMinutes: req.CodingMinutes,
		}, nil
	}
	return nil, errors.New("mocked error")
}

func (asmock *activityServiceMock) GetDailyLogs(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*entity.DailyLog, error) {
	if asmock.success {
		return []*entity.DailyLog{{ID: 1, UserID: userID, LogDate: from, CodingMinutes: 60}}, nil
	}
	return nil, errors.New("mocked error")
}

type goalsServiceMock struct {
	success bool
}

var testGoal = entity.Goal{
	ID:          uuid.New(),
	UserID:      uid,
	Title:       "Weekly applications",
	TargetValue: 10,
	Unit:        "applications",
	Status:      entity.GoalStatusActive,
	Priority:    entity.PriorityHigh,
}

func (gsmock *goalsServiceMock) CreateGoal(ctx context.Context, userID uuid.UUID, req *service.CreateGoalRequest) (*entity.Goal, error) {
	if gsmock.success {
		return &testGoal, nil
	}
	return nil, errors.New("mocked error")
}

func (gsmock *goalsServiceMock) GetActiveGoals(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	if gsmock.success {
		return []*entity.Goal{&testGoal}, nil
	}
	return nil, errors.New("mocked error")
}

func (gsmock *goalsServiceMock) UpdateGoalProgress(ctx context.Context, goalID, userID uuid.UUID, value float64) (*entity.Goal, error) {
	if gsmock.success {
		g := testGoal
		g.CurrentValue = value
		return &g, nil
	}
	return nil, errorvalues.ErrGoalNotFound
}

type achievementsServiceMock struct {
	success bool
}

func (achmock *achievementsServiceMock) CreateAchievement(ctx context.Context, userID uuid.UUID, title, description, achievementType string, icon *string, metadata []byte) (*entity.Achievement, error) {
	return nil, errors.New("not used in handlers")
}

func (achmock *achievementsServiceMock) ListAchievements(ctx context.Context, userID uuid.UUID) ([]*entity.Achievement, error) {
	if achmock.success {
		return []*entity.Achievement{{ID: uuid.New(), UserID: userID, Title: "Goal Completed: Weekly applications"}}, nil
	}
	return nil, errors.New("mocked error")
}

type progressServiceMock struct {
	success bool
}

func (psmock *progressServiceMock) GetProgressStats(ctx context.Context, userID uuid.UUID) (*entity.ProgressStats, error) {
	if psmock.success {
		return &entity.ProgressStats{
			TotalCodingHours: 5,
			CurrentStreak:    3,
			MoodTrend:        "stable",
		}, nil
	}
	return nil, errors.New("mocked error")
}

type guidanceServiceMock struct {
	success bool
}

func (gdmock *guidanceServiceMock) GenerateStrategicGuidance(ctx context.Context, userID uuid.UUID) ([]*entity.MotivationalFeedback, error) {
	if gdmock.success {
		return []*entity.MotivationalFeedback{
			{UserID: userID, FeedbackType: entity.FeedbackWarning, Priority: entity.PriorityHigh, Title: "Final Push Required"},
		}, nil
	}
	return nil, errors.New("mocked error")
}

type feedbackServiceMock struct {
	success bool
}

func (fsmock *feedbackServiceMock) SaveAll(ctx context.Context, messages []*entity.MotivationalFeedback) ([]*entity.MotivationalFeedback, error) {
	if fsmock.success {
		saved := make([]*entity.MotivationalFeedback, 0, len(messages))
		for _, m := range messages {
			stored := *m
			stored.ID = uuid.New()
			stored.CreatedAt = time.Now()
			saved = append(saved, &stored)
		}
		return saved, nil
	}
	return nil, errors.New("mocked error")
}

func (fsmock *feedbackServiceMock) ListUnread(ctx context.Context, userID uuid.UUID) ([]*entity.MotivationalFeedback, error) {
	if fsmock.success {
		return []*entity.MotivationalFeedback{}, nil
	}
	return nil, errors.New("mocked error")
}

func (fsmock *feedbackServiceMock) MarkRead(ctx context.Context, id, userID uuid.UUID) (*entity.MotivationalFeedback, error) {
	if fsmock.success {
		return &entity.MotivationalFeedback{ID: id, UserID: userID, IsRead: true}, nil
	}
	return nil, errorvalues.ErrFeedbackNotFound
}

func newTestServer(success bool) (http.Handler, string) {
	jwtService := jwtservice.New("test_secret")
	s := api.New(&api.ServicesList{
		UserService:         &userServiceMock{success: true},
		ActivityService:     &activityServiceMock{success: success},
		GoalsService:        &goalsServiceMock{success: success},
		AchievementsService: &achievementsServiceMock{success: success},
		ProgressService:     &progressServiceMock{success: success},
		GuidanceService:     &guidanceServiceMock{success: success},
		FeedbackService:     &feedbackServiceMock{success: success},
		JwtService:          jwtService,
	})
	token, err := jwtService.GenerateToken(&testUser)
	if err != nil {
		panic(err)
	}
	return s.Routes(), token
}

func doRequest(t *testing.T, handler http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	handler, _ := newTestServer(true)
	rec := doRequest(t, handler, http.MethodGet, "/api/v1/progress", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogActivityHandler(t *testing.T) {
	handler, token := newTestServer(true)
	t.Run("success", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/api/v1/logs", token, map[string]any{
			"date":           "2025-08-20",
			"coding_minutes": 90,
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		var logEntry entity.DailyLog
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &logEntry))
		assert.Equal(t, 90, logEntry.CodingMinutes)
	})
	t.Run("invalid date", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodPost, "/api/v1/logs", token, map[string]any{
			"date": "20.08.2025",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetDailyLogsHandler(t *testing.T) {
	handler, token := newTestServer(true)
	t.Run("success", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/api/v1/logs?from=2025-08-01&to=2025-08-31", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	t.Run("missing range", func(t *testing.T) {
		rec := doRequest(t, handler, http.MethodGet, "/api/v1/logs", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateGoalProgressHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, token := newTestServer(true)
		rec := doRequest(t, handler, http.MethodPatch, "/api/v1/goals/"+testGoal.ID.String()+"/progress", token, map[string]any{
			"current_value": 7,
		})
		assert.Equal(t, http.StatusOK, rec.Code)
		var goal entity.Goal
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &goal))
		assert.Equal(t, float64(7), goal.CurrentValue)
	})
	t.Run("unexist goal", func(t *testing.T) {
		handler, token := newTestServer(false)
		rec := doRequest(t, handler, http.MethodPatch, "/api/v1/goals/"+uuid.NewString()+"/progress", token, map[string]any{
			"current_value": 7,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
	t.Run("invalid id", func(t *testing.T) {
		handler, token := newTestServer(true)
		rec := doRequest(t, handler, http.MethodPatch, "/api/v1/goals/not-a-uuid/progress", token, map[string]any{
			"current_value": 7,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGenerateGuidanceHandler(t *testing.T) {
	t.Run("generates and persists messages", func(t *testing.T) {
		handler, token := newTestServer(true)
		rec := doRequest(t, handler, http.MethodPost, "/api/v1/guidance", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Guidance []*entity.MotivationalFeedback `json:"guidance"`
		}
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Guidance, 1)
		assert.Equal(t, "Final Push Required", resp.Guidance[0].Title)
		assert.NotEqual(t, uuid.Nil, resp.Guidance[0].ID)
	})
	t.Run("service error", func(t *testing.T) {
		handler, token := newTestServer(false)
		rec := doRequest(t, handler, http.MethodPost, "/api/v1/guidance", token, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetDashboardHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, token := newTestServer(true)
		rec := doRequest(t, handler, http.MethodGet, "/api/v1/dashboard", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		var resp api.DashboardResponse
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Stats)
		assert.Equal(t, 3, resp.Stats.CurrentStreak)
		assert.Len(t, resp.ActiveGoals, 1)
		assert.Len(t, resp.Guidance, 1)
	})
	t.Run("service error", func(t *testing.T) {
		handler, token := newTestServer(false)
		rec := doRequest(t, handler, http.MethodGet, "/api/v1/dashboard", token, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSetDeadlineHandler(t *testing.T) {
	handler, token := newTestServer(true)
	deadline := time.Now().AddDate(0, 3, 0).UTC()
	rec := doRequest(t, handler, http.MethodPut, "/api/v1/me/deadline", token, map[string]any{
		"deadline": deadline.Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
