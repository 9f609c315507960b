package timesheet

import (
	"math"
	"time"

	"github.com/oan-pulse/pulse/internal/model"
)

// DayKeyFormat is the calendar-day key used throughout the weekly view.
const DayKeyFormat = "2006-01-02"

// DayKey returns the bucket key for a date.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// ParseDay parses a YYYY-MM-DD day key.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayKeyFormat, s)
}

// WeekDates returns the 7 calendar dates of the week containing pivot,
// Monday through Sunday, regardless of which weekday the pivot falls on.
// Recompute on every pivot change; the result is never cached.
func WeekDates(pivot time.Time) [7]time.Time {
	// Sunday=0..Saturday=6, walked back to the most recent Monday.
	wd := int(pivot.Weekday())
	shift := 1
	if wd == 0 {
		shift = -6
	}
	monday := time.Date(pivot.Year(), pivot.Month(), pivot.Day(), 0, 0, 0, 0, pivot.Location())
	monday = monday.AddDate(0, 0, shift-wd)

	var week [7]time.Time
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// DayTotal sums the hours logged in the bucket for one day key.
// Invalid hour values count as zero.
func DayTotal(buckets map[string][]model.TimeEntry, key string) float64 {
	var total float64
	for _, e := range buckets[key] {
		h := e.Hours
		if math.IsNaN(h) || math.IsInf(h, 0) {
			continue
		}
		total += h
	}
	return total
}

// WeekTotal sums DayTotal across all 7 dates of the window.
func WeekTotal(buckets map[string][]model.TimeEntry, week [7]time.Time) float64 {
	var total float64
	for _, d := range week {
		total += DayTotal(buckets, DayKey(d))
	}
	return total
}
