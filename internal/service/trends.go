package service

import "github.com/limbo/momentum/pkg/entity"

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

var moodScores = map[string]float64{
	entity.MoodPoor:      1,
	entity.MoodOkay:      2,
	entity.MoodGood:      3,
	entity.MoodExcellent: 4,
}

const trendWindow = 7

// MoodTrend averages the mood of the most recent 7 logs that carry one.
// Logs without a mood are excluded entirely, never defaulted.
func MoodTrend(logs []*entity.DailyLog) string {
	var sum float64
	count := 0
	for i := len(logs) - 1; i >= 0 && count < trendWindow; i-- {
		if logs[i].Mood == nil {
			continue
		}
		score, ok := moodScores[*logs[i].Mood]
		if !ok {
			continue
		}
		sum += score
		count++
	}
	if count == 0 {
		return TrendStable
	}
	mean := sum / float64(count)
	switch {
	case mean > 3.5:
		return TrendImproving
	case mean < 2.5:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// ProductivityTrend averages the raw 1-10 rating of the most recent 7 logs,
// substituting 5 where the rating is missing.
func ProductivityTrend(logs []*entity.DailyLog) string {
	var sum float64
	count := 0
	for i := len(logs) - 1; i >= 0 && count < trendWindow; i-- {
		if logs[i].Productivity != nil {
			sum += float64(*logs[i].Productivity)
		} else {
			sum += 5
		}
		count++
	}
	if count == 0 {
		return TrendStable
	}
	mean := sum / float64(count)
	switch {
	case mean > 7:
		return TrendImproving
	case mean < 4:
		return TrendDeclining
	default:
		return TrendStable
	}
}
