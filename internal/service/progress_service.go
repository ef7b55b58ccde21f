package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/momentum/internal/repository"
	"github.com/limbo/momentum/pkg/entity"
)

// Lookback window of GetProgressStats, in calendar days including today.
const statsWindowDays = 30

type ProgressService struct {
	logsRepo         repository.DailyLogsRepositoryI
	goalsRepo        repository.GoalsRepositoryI
	achievementsRepo repository.AchievementsRepositoryI
}

func NewProgressService(logsRepo repository.DailyLogsRepositoryI, goalsRepo repository.GoalsRepositoryI, achievementsRepo repository.AchievementsRepositoryI) *ProgressService {
	if logsRepo == nil || goalsRepo == nil || achievementsRepo == nil {
		log.Fatal("on progress service provided nil repos")
	}
	return &ProgressService{
		logsRepo:         logsRepo,
		goalsRepo:        goalsRepo,
		achievementsRepo: achievementsRepo,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetProgressStats assembles the 30-day stats bundle. Nothing is cached:
// streaks, trends and totals are recomputed from storage on every call.
func (ps *ProgressService) GetProgressStats(ctx context.Context, uid uuid.UUID) (*entity.ProgressStats, error) {
	today := DateOnly(time.Now())
	from := today.AddDate(0, 0, -(statsWindowDays - 1))
	logs, err := ps.logsRepo.GetByUserAndDateRange(ctx, uid, from, today)
	if err != nil {
		return nil, errors.New("daily logs repository error: " + err.Error())
	}
	goals, err := ps.goalsRepo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	achievementsCount, err := ps.achievementsRepo.CountByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("achievements repository error: " + err.Error())
	}

	var codingMinutes, applications, learningMinutes int
	for _, l := range logs {
		codingMinutes += l.CodingMinutes
		applications += l.ApplicationsSubmitted
		learningMinutes += l.LearningMinutes
	}
	// Averages divide by logged days, not by calendar days in the window.
	divisor := float64(len(logs))
	if divisor < 1 {
		divisor = 1
	}

	var completed, active int
	for _, g := range goals {
		switch g.Status {
		case entity.GoalStatusCompleted:
			completed++
		case entity.GoalStatusActive:
			active++
		}
	}

	return &entity.ProgressStats{
		TotalCodingHours:         round2(float64(codingMinutes) / 60),
		TotalApplications:        applications,
		TotalLearningHours:       round2(float64(learningMinutes) / 60),
		AverageDailyCoding:       round2(float64(codingMinutes) / 60 / divisor),
		AverageDailyApplications: round2(float64(applications) / divisor),
		AverageDailyLearning:     round2(float64(learningMinutes) / 60 / divisor),
		CurrentStreak:            CurrentStreak(logs, time.Now()),
		LongestStreak:            LongestStreak(logs),
		GoalsCompleted:           completed,
		GoalsActive:              active,
		AchievementsUnlocked:     achievementsCount,
		MoodTrend:                MoodTrend(logs),
		ProductivityTrend:        ProductivityTrend(logs),
	}, nil
}
