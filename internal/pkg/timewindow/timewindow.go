package timewindow

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end time must be after start time")

// Window is an immutable [start, end) time interval.
type Window struct {
	start time.Time
	end   time.Time
}

// New builds a Window and rejects empty or inverted intervals.
func New(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidRange
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time { return w.start }

func (w Window) End() time.Time { return w.end }

// Overlaps reports whether the two windows share any instant.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// IsCurrent reports whether now falls inside the window. Boundary
// instants belong to "current", never to "past" or "future", so the
// three classifications are mutually exclusive for any instant.
func (w Window) IsCurrent(now time.Time) bool {
	return !w.start.After(now) && now.Before(w.end)
}

// IsPast reports whether the window has fully elapsed.
func (w Window) IsPast(now time.Time) bool {
	return !w.end.After(now)
}

// IsFuture reports whether the window has not started yet. The start
// instant itself counts as current, not future.
func (w Window) IsFuture(now time.Time) bool {
	return w.start.After(now)
}
