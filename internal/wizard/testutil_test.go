package wizard

import (
	"time"

	"deadline-doom/pkg/datemath"
)

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testDates() *datemath.Parser { return datemath.MustParser("UTC") }

// fakeTimer is a timer that only fires when the test says so.
type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeScheduler struct {
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return t
}

// fire runs every live timer.
func (s *fakeScheduler) fire() {
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

// fireLate runs timer i even if it was stopped, like a callback that was
// already on its way when Stop was called.
func (s *fakeScheduler) fireLate(i int) {
	s.timers[i].fired = true
	s.timers[i].f()
}

func validDraft(title, deadline string, hours int) Draft {
	return Draft{Title: title, Deadline: deadline, Hours: hours, Type: "work"}
}
