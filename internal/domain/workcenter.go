package domain

import "time"

type WorkCenter struct {
	ID                 string
	Name               string
	Shifts             []Shift
	MaintenanceWindows []MaintenanceWindow
}

// Shift is a weekly recurring working interval on the UTC calendar.
// DayOfWeek uses time.Weekday numbering (Sunday = 0). EndHour may be 24.
// A shift whose EndHour is less than its StartHour runs past midnight and
// ends on the following day.
type Shift struct {
	DayOfWeek time.Weekday
	StartHour int
	EndHour   int
}

// Overnight reports whether the shift ends on the day after it starts.
func (s Shift) Overnight() bool {
	return s.EndHour < s.StartHour
}

// Length returns the working time one occurrence of the shift provides.
func (s Shift) Length() time.Duration {
	hours := s.EndHour - s.StartHour
	if s.Overnight() {
		hours += 24
	}
	return time.Duration(hours) * time.Hour
}

// Window returns the concrete [start, end) occurrence of the shift that
// begins on the UTC calendar day containing day.
func (s Shift) Window(day time.Time) (time.Time, time.Time) {
	midnight := StartOfDay(day)
	start := midnight.Add(time.Duration(s.StartHour) * time.Hour)
	return start, start.Add(s.Length())
}

// HasWorkingTime reports whether any shift provides a positive amount of time.
func (wc *WorkCenter) HasWorkingTime() bool {
	for _, s := range wc.Shifts {
		if s.Length() > 0 {
			return true
		}
	}
	return false
}

// MaintenanceWindow is a one-off blackout interval.
type MaintenanceWindow struct {
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// Overlaps reports whether the window intersects [start, end).
// Windows that merely touch the interval do not overlap it.
func (m MaintenanceWindow) Overlaps(start, end time.Time) bool {
	return m.EndDate.After(start) && m.StartDate.Before(end)
}

// StartOfDay truncates t to midnight of its UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
