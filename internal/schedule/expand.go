package schedule

import "time"

// ExpandRange returns every calendar day covered by the inclusive range
// [start, end], in increasing order with no gaps or duplicates. Pure date
// arithmetic; time-of-day and zone on the inputs are discarded.
func ExpandRange(start, end time.Time) ([]time.Time, error) {
	s := toDay(start)
	e := toDay(end)

	if e.Before(s) {
		return nil, ErrInvalidRange
	}

	days := make([]time.Time, 0, int(e.Sub(s).Hours()/24)+1)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

func toDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
