package booking

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("window end must be after start")

// Window is a half-open rental interval [start, end) in UTC.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	start = start.UTC()
	end = end.UTC()
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Contains reports whether t falls inside the half-open interval.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// Overlaps uses half-open semantics: [a,b) and [c,d) intersect iff
// a < d && c < b. Windows sharing only a boundary instant do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func (w Window) ElapsedBy(now time.Time) bool {
	return !now.Before(w.end)
}

// Days is the billable day count: ceil of the whole-hour duration over 24,
// never less than one day.
func (w Window) Days() int {
	hours := int64(w.Duration().Hours())
	days := (hours + 23) / 24
	if days < 1 {
		days = 1
	}
	return int(days)
}

// OverlapHours returns the whole hours the window shares with [from, to),
// zero when disjoint.
func (w Window) OverlapHours(from, to time.Time) int64 {
	start := w.start
	if from.After(start) {
		start = from
	}
	end := w.end
	if to.Before(end) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return int64(end.Sub(start).Hours())
}
