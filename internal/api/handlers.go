package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/momentum/internal/error_values"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/entity"
	"github.com/limbo/momentum/pkg/httputil"
)

const dateLayout = "2006-01-02"

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LogActivityRequest struct {
	Date                  string  `json:"date"`
	CodingMinutes         int     `json:"coding_minutes"`
	ApplicationsSubmitted int     `json:"applications_submitted"`
	LearningMinutes       int     `json:"learning_minutes"`
	Notes                 *string `json:"notes,omitempty"`
	Challenges            *string `json:"challenges,omitempty"`
	Achievements          *string `json:"achievements,omitempty"`
	Mood                  *string `json:"mood,omitempty"`
	EnergyLevel           *int    `json:"energy_level,omitempty"`
	Productivity          *int    `json:"productivity,omitempty"`
}

type CreateGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"desc"`
	GoalType    string     `json:"goal_type"`
	TargetValue float64    `json:"target_value"`
	Unit        string     `json:"unit"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     time.Time  `json:"end_date"`
	Priority    string     `json:"priority"`
}

type UpdateGoalProgressRequest struct {
	CurrentValue float64 `json:"current_value"`
}

type SetDeadlineRequest struct {
	Deadline *time.Time `json:"deadline"`
}

type GetLogsResponse struct {
	UserID string             `json:"uid"`
	From   string             `json:"from"`
	To     string             `json:"to"`
	Logs   []*entity.DailyLog `json:"logs"`
}

type DashboardResponse struct {
	Stats          *entity.ProgressStats            `json:"stats"`
	ActiveGoals    []*entity.Goal                   `json:"active_goals"`
	Achievements   []*entity.Achievement            `json:"achievements"`
	UnreadFeedback []*entity.MotivationalFeedback   `json:"unread_feedback"`
	Guidance       []*entity.MotivationalFeedback   `json:"guidance"`
	RecentLogs     []*entity.DailyLog               `json:"recent_logs"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) LogActivity(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log activity error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req LogActivityRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("log activity error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		logger.Error("log activity error: invalid date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	logEntry, err := s.activityService.LogDailyActivity(ctx, uid, &service.LogActivityRequest{
		Date:                  date,
		CodingMinutes:         req.CodingMinutes,
		ApplicationsSubmitted: req.ApplicationsSubmitted,
		LearningMinutes:       req.LearningMinutes,
		Notes:                 req.Notes,
		Challenges:            req.Challenges,
		Achievements:          req.Achievements,
		Mood:                  req.Mood,
		EnergyLevel:           req.EnergyLevel,
		Productivity:          req.Productivity,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("log activity error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("log activity error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging activity", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, logEntry)
	logger.Info("daily activity logged")
}

func (s *Server) GetDailyLogs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get logs error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		logger.Error("get logs error: invalid from date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		logger.Error("get logs error: invalid to date")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	logs, err := s.activityService.GetDailyLogs(ctx, uid, from, to)
	if err != nil {
		logger.Error("getting logs error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting daily logs", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetLogsResponse{
		UserID: uid.String(),
		From:   from.Format(dateLayout),
		To:     to.Format(dateLayout),
		Logs:   logs,
	})
	logger.Info("daily logs provided")
}

func (s *Server) CreateGoal(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create goal error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateGoalRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create goal error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	serviceReq := service.CreateGoalRequest{
		Title:       req.Title,
		Description: req.Description,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		EndDate:     req.EndDate,
		Priority:    req.Priority,
	}
	if req.StartDate != nil {
		serviceReq.StartDate = *req.StartDate
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.CreateGoal(ctx, uid, &serviceReq)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("create goal error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create goal: user doesn't exists", nil)
			return
		}
		logger.Error("create goal error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating goal", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, goal)
	logger.Info("goal created")
}

func (s *Server) GetActiveGoals(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get active goals error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	goals, err := s.goalsService.GetActiveGoals(ctx, uid)
	if err != nil {
		logger.Error("getting active goals error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting active goals", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   uid.String(),
		"goals": goals,
	})
	logger.Info("active goals provided")
}

func (s *Server) UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("goal progress error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("goal progress error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid goal id in path value", nil)
		return
	}
	var req UpdateGoalProgressRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("goal progress error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	goal, err := s.goalsService.UpdateGoalProgress(ctx, id, uid, req.CurrentValue)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrGoalNotFound):
			logger.Error("goal progress error: unexist goal")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "goal doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("goal progress error: goal has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "goal doesn't exist", nil)
		default:
			logger.Error("goal progress error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating goal", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, goal)
	logger.Info("goal progress updated")
}

func (s *Server) GetAchievements(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get achievements error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	achievements, err := s.achievementsService.ListAchievements(ctx, uid)
	if err != nil {
		logger.Error("getting achievements error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting achievements", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":          uid.String(),
		"achievements": achievements,
	})
	logger.Info("achievements provided")
}

func (s *Server) GetProgressStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get progress error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	stats, err := s.progressService.GetProgressStats(ctx, uid)
	if err != nil {
		logger.Error("getting progress stats error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while computing progress stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info("progress stats provided")
}

// GenerateGuidance evaluates the rule list and persists fired messages, so
// they show up later as unread feedback.
func (s *Server) GenerateGuidance(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("guidance error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	messages, err := s.guidanceService.GenerateStrategicGuidance(ctx, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("guidance error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("guidance error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while generating guidance", nil)
		return
	}
	saved, err := s.feedbackService.SaveAll(ctx, messages)
	if err != nil {
		logger.Error("guidance error: saving feedback error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while saving guidance", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":      uid.String(),
		"guidance": saved,
	})
	logger.Info("guidance generated")
}

func (s *Server) GetUnreadFeedback(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get feedback error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	feedback, err := s.feedbackService.ListUnread(ctx, uid)
	if err != nil {
		logger.Error("getting unread feedback error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting feedback", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":      uid.String(),
		"feedback": feedback,
	})
	logger.Info("unread feedback provided")
}

func (s *Server) MarkFeedbackRead(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("mark feedback error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("mark feedback error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid feedback id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	feedback, err := s.feedbackService.MarkRead(ctx, id, uid)
	if err != nil {
		if errors.Is(err, errorvalues.ErrFeedbackNotFound) {
			logger.Error("mark feedback error: unexist feedback")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "feedback doesn't exist", nil)
			return
		}
		logger.Error("mark feedback error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating feedback", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, feedback)
	logger.Info("feedback marked read")
}

func (s *Server) SetDeadline(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("set deadline error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req SetDeadlineRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("set deadline error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.SetDeadline(ctx, uid, req.Deadline)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			logger.Error("set deadline error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
			return
		}
		logger.Error("set deadline error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while setting deadline", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":      uid.String(),
		"deadline": req.Deadline,
	})
	logger.Info("deadline updated")
}

// GetDashboard assembles the composite payload: fresh stats, active goals,
// achievements, unread feedback, transient guidance and the last 7 days of logs.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("dashboard error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
	defer cancel()
	stats, err := s.progressService.GetProgressStats(ctx, uid)
	if err != nil {
		logger.Error("dashboard error: stats", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while assembling dashboard", nil)
		return
	}
	goals, err := s.goalsService.GetActiveGoals(ctx, uid)
	if err != nil {
		logger.Error("dashboard error: goals", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while assembling dashboard", nil)
		return
	}
	achievements, err := s.achievementsService.ListAchievements(ctx, uid)
	if err != nil {
		logger.Error("dashboard error: achievements", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while assembling dashboard", nil)
		return
	}
	unread, err := s.feedbackService.ListUnread(ctx, uid)
	if err != nil {
		logger.Error("dashboard error: feedback", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while assembling dashboard", nil)
		return
	}
	guidance, err := s.guidanceService.GenerateStrategicGuidance(ctx, uid)
	if err != nil {
		logger.Error("dashboard error: guidance", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while assembling dashboard", nil)
		return
	}
	today := time.Now()
	recentLogs, err := s.activityService.GetDailyLogs(ctx, uid, today.AddDate(0, 0, -6), today)
	if err != nil {
		logger.Error("dashboard error: recent logs", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while assembling dashboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, DashboardResponse{
		Stats:          stats,
		ActiveGoals:    goals,
		Achievements:   achievements,
		UnreadFeedback: unread,
		Guidance:       guidance,
		RecentLogs:     recentLogs,
	})
	logger.Info("dashboard provided")
}
