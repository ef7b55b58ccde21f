package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
	// Target date of the user's job search. Nil until the user sets one.
	Deadline *time.Time
}

// Mood values allowed on a daily log.
const (
	MoodExcellent = "excellent"
	MoodGood      = "good"
	MoodOkay      = "okay"
	MoodPoor      = "poor"
)

// DailyLog is one self-report per (user, calendar day). Repeated logs for the
// same day replace the mutable fields instead of accumulating.
type DailyLog struct {
	ID                    int64     `json:"id"`
	UserID                uuid.UUID `json:"uid"`
	LogDate               time.Time `json:"log_date"`
	CodingMinutes         int       `json:"coding_minutes"`
	ApplicationsSubmitted int       `json:"applications_submitted"`
	LearningMinutes       int       `json:"learning_minutes"`
	Notes                 *string   `json:"notes,omitempty"`
	Challenges            *string   `json:"challenges,omitempty"`
	Achievements          *string   `json:"achievements,omitempty"`
	Mood                  *string   `json:"mood,omitempty"`
	EnergyLevel           *int      `json:"energy_level,omitempty"`
	Productivity          *int      `json:"productivity,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// IsActive reports whether the day counts toward streaks.
func (l *DailyLog) IsActive() bool {
	return l.CodingMinutes > 0 || l.ApplicationsSubmitted > 0 || l.LearningMinutes > 0
}

const (
	GoalStatusActive    = "ACTIVE"
	GoalStatusCompleted = "COMPLETED"
)

const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

type Goal struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"uid"`
	Title        string    `json:"title"`
	Description  string    `json:"desc"`
	GoalType     string    `json:"goal_type"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	Unit         string    `json:"unit"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Achievement is an immutable unlock record. Never updated or deleted.
type Achievement struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"uid"`
	Title           string    `json:"title"`
	Description     string    `json:"desc"`
	AchievementType string    `json:"achievement_type"`
	Icon            *string   `json:"icon,omitempty"`
	Metadata        []byte    `json:"metadata,omitempty"`
	UnlockedAt      time.Time `json:"unlocked_at"`
}

const (
	FeedbackEncouragement = "encouragement"
	FeedbackCelebration   = "celebration"
	FeedbackGuidance      = "guidance"
	FeedbackWarning       = "warning"
)

type MotivationalFeedback struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"uid"`
	FeedbackType string     `json:"feedback_type"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Priority     string     `json:"priority"`
	IsRead       bool       `json:"is_read"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ProgressStats is computed on demand over a 30-day lookback, never persisted.
type ProgressStats struct {
	TotalCodingHours         float64 `json:"total_coding_hours"`
	TotalApplications        int     `json:"total_applications"`
	TotalLearningHours       float64 `json:"total_learning_hours"`
	AverageDailyCoding       float64 `json:"average_daily_coding"`
	AverageDailyApplications float64 `json:"average_daily_applications"`
	AverageDailyLearning     float64 `json:"average_daily_learning"`
	CurrentStreak            int     `json:"current_streak"`
	LongestStreak            int     `json:"longest_streak"`
	GoalsCompleted           int     `json:"goals_completed"`
	GoalsActive              int     `json:"goals_active"`
	AchievementsUnlocked     int     `json:"achievements_unlocked"`
	MoodTrend                string  `json:"mood_trend"`
	ProductivityTrend        string  `json:"productivity_trend"`
}
