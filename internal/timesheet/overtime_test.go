package timesheet

import (
	"math"
	"testing"
)

func TestSplitHoursAdditivity(t *testing.T) {
	totals := []float64{0, 0.25, 4, 7.99, 8, 8.01, 9.5, 12, 16, 24.75}
	for _, total := range totals {
		s := SplitHours(total, DailyTarget)
		if got := s.Regular + s.Overtime; math.Abs(got-total) > 1e-9 {
			t.Errorf("SplitHours(%v): regular+overtime = %v, want %v", total, got, total)
		}
		if s.IsOvertime() != (total > DailyTarget) {
			t.Errorf("SplitHours(%v): IsOvertime = %v", total, s.IsOvertime())
		}
		if s.Regular > DailyTarget {
			t.Errorf("SplitHours(%v): regular %v exceeds target", total, s.Regular)
		}
		if s.Overtime < 0 {
			t.Errorf("SplitHours(%v): negative overtime %v", total, s.Overtime)
		}
	}
}

func TestSplitHoursExactTarget(t *testing.T) {
	s := SplitHours(8, DailyTarget)
	if s.Regular != 8 || s.Overtime != 0 {
		t.Errorf("got %+v, want regular 8 overtime 0", s)
	}
	if s.IsOvertime() {
		t.Error("exactly 8 hours is not overtime")
	}
}

func TestSplitPercents(t *testing.T) {
	s := SplitHours(10, DailyTarget)
	if got := s.RegularPercent(DailyTarget); got != 100 {
		t.Errorf("RegularPercent = %v, want 100", got)
	}
	if got := s.OvertimePercent(DailyTarget); got != 25 {
		t.Errorf("OvertimePercent = %v, want 25", got)
	}

	// Overtime beyond a full extra day is capped for display.
	s = SplitHours(20, DailyTarget)
	if got := s.OvertimePercent(DailyTarget); got != 100 {
		t.Errorf("OvertimePercent = %v, want capped 100", got)
	}

	s = SplitHours(4, DailyTarget)
	if got := s.RegularPercent(DailyTarget); got != 50 {
		t.Errorf("RegularPercent = %v, want 50", got)
	}
	if got := s.OvertimePercent(DailyTarget); got != 0 {
		t.Errorf("OvertimePercent = %v, want 0", got)
	}
}
