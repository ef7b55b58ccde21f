package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/momentum/internal/service"
)

type Server struct {
	mx                  *chi.Mux
	userService         service.UserServiceI
	activityService     service.ActivityServiceI
	goalsService        service.GoalsServiceI
	achievementsService service.AchievementsServiceI
	progressService     service.ProgressServiceI
	guidanceService     service.GuidanceServiceI
	feedbackService     service.FeedbackServiceI
	jwtService          JWTServiceI
}

type ServicesList struct {
	UserService         service.UserServiceI
	ActivityService     service.ActivityServiceI
	GoalsService        service.GoalsServiceI
	AchievementsService service.AchievementsServiceI
	ProgressService     service.ProgressServiceI
	GuidanceService     service.GuidanceServiceI
	FeedbackService     service.FeedbackServiceI
	JwtService          JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:                  chi.NewMux(),
		userService:         servicesOptions.UserService,
		activityService:     servicesOptions.ActivityService,
		goalsService:        servicesOptions.GoalsService,
		achievementsService: servicesOptions.AchievementsService,
		progressService:     servicesOptions.ProgressService,
		guidanceService:     servicesOptions.GuidanceService,
		feedbackService:     servicesOptions.FeedbackService,
		jwtService:          servicesOptions.JwtService,
	}
}

func (s *Server) Routes() *chi.Mux {
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/logs", s.LogActivity)
			r.Get("/logs", s.GetDailyLogs)
			r.Post("/goals", s.CreateGoal)
			r.Get("/goals/active", s.GetActiveGoals)
			r.Patch("/goals/{id}/progress", s.UpdateGoalProgress)
			r.Get("/achievements", s.GetAchievements)
			r.Get("/progress", s.GetProgressStats)
			r.Post("/guidance", s.GenerateGuidance)
			r.Get("/feedback/unread", s.GetUnreadFeedback)
			r.Patch("/feedback/{id}/read", s.MarkFeedbackRead)
			r.Put("/me/deadline", s.SetDeadline)
			r.Get("/dashboard", s.GetDashboard)
		})
	})
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.Routes())
}
