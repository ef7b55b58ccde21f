package service

import (
	"time"

	"github.com/limbo/momentum/pkg/entity"
)

// DateOnly strips the time of day, keeping the calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentStreak walks backward from today one calendar day at a time and
// counts consecutive active days. The walk stops at the first day with no log
// or an inactive log, so a single missed day ends the streak. Returns 0 when
// today itself has no active log.
func CurrentStreak(logs []*entity.DailyLog, today time.Time) int {
	byDay := make(map[time.Time]*entity.DailyLog, len(logs))
	for _, l := range logs {
		byDay[DateOnly(l.LogDate)] = l
	}
	streak := 0
	day := DateOnly(today)
	for {
		l, ok := byDay[day]
		if !ok || !l.IsActive() {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak scans logs in chronological order, counting runs of active
// days and resetting on inactive ones. Days absent from the slice are not
// detected; callers wanting gap handling must supply contiguous data.
func LongestStreak(logs []*entity.DailyLog) int {
	longest, run := 0, 0
	for _, l := range logs {
		if l.IsActive() {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
