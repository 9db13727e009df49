package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
)

// shiftWindow is one concrete occurrence of a weekly shift.
type shiftWindow struct {
	start time.Time
	end   time.Time
}

// windowsTouchingDay returns the shift occurrences that start on the UTC day
// of t, plus overnight occurrences from the previous day that run into it,
// ordered by start.
func windowsTouchingDay(t time.Time, shifts []domain.Shift) []shiftWindow {
	today := domain.StartOfDay(t)
	yesterday := today.AddDate(0, 0, -1)

	var windows []shiftWindow
	for _, s := range shifts {
		if s.Length() <= 0 {
			continue
		}
		if s.DayOfWeek == today.Weekday() {
			start, end := s.Window(today)
			windows = append(windows, shiftWindow{start: start, end: end})
		}
		if s.Overnight() && s.DayOfWeek == yesterday.Weekday() {
			start, end := s.Window(yesterday)
			windows = append(windows, shiftWindow{start: start, end: end})
		}
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].start.Before(windows[j].start)
	})
	return windows
}

// nextShift finds the earliest working interval on the cursor's day that has
// not ended yet. The returned start is clamped to the cursor.
func nextShift(cursor time.Time, shifts []domain.Shift) (time.Time, time.Time, bool) {
	for _, w := range windowsTouchingDay(cursor, shifts) {
		if !cursor.Before(w.end) {
			continue
		}
		start := w.start
		if cursor.After(start) {
			start = cursor
		}
		return start, w.end, true
	}
	return time.Time{}, time.Time{}, false
}

func hasWorkingTime(shifts []domain.Shift) bool {
	for _, s := range shifts {
		if s.Length() > 0 {
			return true
		}
	}
	return false
}

// AdvanceWorkingTime returns the instant at which work has elapsed when
// working from start under the weekly shift calendar. Time outside shifts
// does not count, and days without shifts are skipped.
//
// A zero or negative amount of work returns start unchanged. The calendar
// must contain at least one shift of positive length; AdvanceWorkingTime
// panics otherwise because no amount of waiting would finish the work.
func AdvanceWorkingTime(start time.Time, work time.Duration, shifts []domain.Shift) time.Time {
	if work <= 0 {
		return start
	}
	if !hasWorkingTime(shifts) {
		panic("scheduler: AdvanceWorkingTime needs at least one shift with working time")
	}

	remaining := work
	cursor := start.UTC()
	for {
		shiftStart, shiftEnd, ok := nextShift(cursor, shifts)
		if !ok {
			cursor = domain.StartOfDay(cursor).AddDate(0, 0, 1)
			continue
		}

		available := shiftEnd.Sub(shiftStart)
		if remaining <= available {
			return shiftStart.Add(remaining)
		}
		remaining -= available
		cursor = shiftEnd
	}
}

// WorkingTimeBetween returns how much working time the calendar provides
// inside [from, to).
func WorkingTimeBetween(from, to time.Time, shifts []domain.Shift) time.Duration {
	cursor, end := from.UTC(), to.UTC()
	var total time.Duration
	for cursor.Before(end) {
		shiftStart, shiftEnd, ok := nextShift(cursor, shifts)
		if !ok {
			cursor = domain.StartOfDay(cursor).AddDate(0, 0, 1)
			continue
		}
		if !shiftStart.Before(end) {
			break
		}
		if shiftEnd.After(end) {
			shiftEnd = end
		}
		total += shiftEnd.Sub(shiftStart)
		cursor = shiftEnd
	}
	return total
}

// IsWorkingInstant reports whether t falls inside a shift.
func IsWorkingInstant(t time.Time, shifts []domain.Shift) bool {
	t = t.UTC()
	for _, w := range windowsTouchingDay(t, shifts) {
		if !t.Before(w.start) && t.Before(w.end) {
			return true
		}
	}
	return false
}
