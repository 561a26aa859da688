package entity

import (
	"fmt"
	"time"
)

// Cycle is a time-boxed learning period. The server owns its lifecycle;
// the client only derives temporal state from Start/End and the wall clock.
type Cycle struct {
	ID    int64
	Start time.Time
	End   time.Time
}

// Expired reports whether the cycle has ended at the given instant.
func (c Cycle) Expired(now time.Time) bool {
	return !now.Before(c.End)
}

// Remaining returns the time left in the cycle broken into calendar-style
// components, flooring on milliseconds and cascading the remainder from
// days down to seconds. The boolean is false once the cycle has expired;
// components are never negative.
func (c Cycle) Remaining(now time.Time) (Countdown, bool) {
	ms := c.End.Sub(now).Milliseconds()
	if ms <= 0 {
		return Countdown{}, false
	}

	const (
		msPerSecond = int64(1000)
		msPerMinute = 60 * msPerSecond
		msPerHour   = 60 * msPerMinute
		msPerDay    = 24 * msPerHour
	)

	cd := Countdown{Days: int(ms / msPerDay)}
	ms %= msPerDay
	cd.Hours = int(ms / msPerHour)
	ms %= msPerHour
	cd.Minutes = int(ms / msPerMinute)
	ms %= msPerMinute
	cd.Seconds = int(ms / msPerSecond)
	return cd, true
}

// Countdown is the remaining time of a cycle split into display units.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

func (cd Countdown) String() string {
	if cd.Days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", cd.Days, cd.Hours, cd.Minutes, cd.Seconds)
	}
	return fmt.Sprintf("%02d:%02d:%02d", cd.Hours, cd.Minutes, cd.Seconds)
}

// CycleDuration is the requested length of a new cycle.
type CycleDuration struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether every component is zero.
func (d CycleDuration) IsZero() bool {
	return d.Days == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// Validate rejects durations that would create an already-expired cycle.
func (d CycleDuration) Validate() error {
	if d.IsZero() {
		return ErrZeroDuration
	}
	if d.Days < 0 || d.Hours < 0 || d.Minutes < 0 || d.Seconds < 0 {
		return ErrZeroDuration
	}
	return nil
}

// Span converts the duration into a time.Duration.
func (d CycleDuration) Span() time.Duration {
	return time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}
