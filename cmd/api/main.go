// @title Momentum API
// @description API for the job-search progress tracker "Momentum"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/momentum/internal/api"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/internal/service"
	"github.com/limbo/momentum/pkg/cleanup"
	"github.com/limbo/momentum/pkg/config"
	jwtservice "github.com/limbo/momentum/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	logsRepo := repository.NewDailyLogsRepo(&dbCfg)
	goalsRepo := repository.NewGoalsRepo(&dbCfg)
	achievementsRepo := repository.NewAchievementsRepo(&dbCfg)
	feedbackRepo := repository.NewFeedbackRepo(&dbCfg)

	achievementsService := service.NewAchievementsService(achievementsRepo)
	progressService := service.NewProgressService(logsRepo, goalsRepo, achievementsRepo)
	serv := api.New(&api.ServicesList{
		UserService:         service.NewUserService(usersRepo),
		ActivityService:     service.NewActivityService(logsRepo),
		GoalsService:        service.NewGoalsService(goalsRepo, achievementsService),
		AchievementsService: achievementsService,
		ProgressService:     progressService,
		GuidanceService:     service.NewGuidanceService(usersRepo, progressService),
		FeedbackService:     service.NewFeedbackService(feedbackRepo),
		JwtService:          jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}
