package timesheet

// DailyTarget is the fixed daily threshold splitting regular from
// overtime hours. Display-only, not a business rule; must never be zero.
const DailyTarget = 8.0

// Split is the regular/overtime breakdown of a day's total hours.
type Split struct {
	Regular  float64
	Overtime float64
}

// SplitHours divides a non-negative total against the target.
// Regular + Overtime always equals the total.
func SplitHours(total, target float64) Split {
	s := Split{Regular: total}
	if total > target {
		s.Regular = target
		s.Overtime = total - target
	}
	return s
}

// IsOvertime reports whether the total exceeds the target.
func (s Split) IsOvertime() bool {
	return s.Overtime > 0
}

// RegularPercent is the regular share as a percentage of the target.
func (s Split) RegularPercent(target float64) float64 {
	return s.Regular / target * 100
}

// OvertimePercent is the overtime share as a percentage of the target,
// capped at 100 so the second bar segment never overflows its track.
func (s Split) OvertimePercent(target float64) float64 {
	p := s.Overtime / target * 100
	if p > 100 {
		p = 100
	}
	return p
}
