package timesheet

import (
	"testing"
	"time"

	"github.com/oan-pulse/pulse/internal/model"
)

func TestWeekDatesAlwaysMondayAnchored(t *testing.T) {
	tests := []struct {
		name       string
		pivot      time.Time
		wantMonday string
		wantSunday string
	}{
		{"wednesday pivot", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), "2024-01-01", "2024-01-07"},
		{"monday pivot", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-01-01", "2024-01-07"},
		{"sunday pivot", time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), "2024-01-01", "2024-01-07"},
		{"saturday pivot", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), "2024-01-01", "2024-01-07"},
		{"month boundary", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-02-26", "2024-03-03"},
		{"year boundary", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(-1, 0, 0), "2022-12-26", "2023-01-01"},
		{"leap february", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "2024-02-26", "2024-03-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekDates(tt.pivot)
			if got := DayKey(week[0]); got != tt.wantMonday {
				t.Errorf("week[0] = %s, want %s", got, tt.wantMonday)
			}
			if got := DayKey(week[6]); got != tt.wantSunday {
				t.Errorf("week[6] = %s, want %s", got, tt.wantSunday)
			}
			if week[0].Weekday() != time.Monday {
				t.Errorf("week starts on %v, want Monday", week[0].Weekday())
			}
			if week[6].Weekday() != time.Sunday {
				t.Errorf("week ends on %v, want Sunday", week[6].Weekday())
			}
			for i := 1; i < 7; i++ {
				if !week[i].Equal(week[i-1].AddDate(0, 0, 1)) {
					t.Errorf("week[%d] %v does not follow week[%d] %v", i, week[i], i-1, week[i-1])
				}
			}
		})
	}
}

func TestWeekDatesContainPivot(t *testing.T) {
	// Every pivot over several months must fall inside its own window.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		pivot := start.AddDate(0, 0, i)
		week := WeekDates(pivot)
		found := false
		for _, d := range week {
			if DayKey(d) == DayKey(pivot) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("pivot %s not in its own week window", DayKey(pivot))
		}
	}
}

func TestDayTotal(t *testing.T) {
	buckets := map[string][]model.TimeEntry{
		"2024-01-03": {
			{Hours: 2.5},
			{Hours: 1.25},
		},
	}
	if got := DayTotal(buckets, "2024-01-03"); got != 3.75 {
		t.Errorf("DayTotal = %v, want 3.75", got)
	}
	if got := DayTotal(buckets, "2024-01-04"); got != 0 {
		t.Errorf("DayTotal for empty day = %v, want 0", got)
	}
}

func TestWeekTotal(t *testing.T) {
	week := WeekDates(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	buckets := map[string][]model.TimeEntry{
		"2024-01-01": {{Hours: 8}},
		"2024-01-03": {{Hours: 2}, {Hours: 1.5}},
		"2024-01-07": {{Hours: 4}},
		// Outside the window; must not count.
		"2024-01-08": {{Hours: 100}},
	}
	if got := WeekTotal(buckets, week); got != 15.5 {
		t.Errorf("WeekTotal = %v, want 15.5", got)
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	d, err := ParseDay("2024-06-14")
	if err != nil {
		t.Fatal(err)
	}
	if got := DayKey(d); got != "2024-06-14" {
		t.Errorf("round trip = %s", got)
	}
	if _, err := ParseDay("14/06/2024"); err == nil {
		t.Error("expected error for malformed day key")
	}
}
