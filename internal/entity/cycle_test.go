package entity

import (
	"testing"
	"time"
)

func TestCycleRemainingCascade(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cycle := Cycle{Start: start, End: start.Add(49*time.Hour + 30*time.Minute + 12*time.Second)}

	cd, ok := cycle.Remaining(start)
	if !ok {
		t.Fatal("expected cycle to be running")
	}
	want := Countdown{Days: 2, Hours: 1, Minutes: 30, Seconds: 12}
	if cd != want {
		t.Fatalf("Remaining = %+v, want %+v", cd, want)
	}
}

func TestCycleRemainingFloorsSubsecond(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cycle := Cycle{Start: start, End: start.Add(1500 * time.Millisecond)}

	cd, ok := cycle.Remaining(start)
	if !ok {
		t.Fatal("expected cycle to be running")
	}
	if cd.Seconds != 1 || cd.Minutes != 0 || cd.Hours != 0 || cd.Days != 0 {
		t.Fatalf("Remaining = %+v, want exactly one second", cd)
	}
}

func TestCycleRemainingMonotonic(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cycle := Cycle{Start: start, End: start.Add(3 * 24 * time.Hour)}

	totalMS := func(cd Countdown) int64 {
		return int64(cd.Seconds)*1000 +
			int64(cd.Minutes)*60*1000 +
			int64(cd.Hours)*3600*1000 +
			int64(cd.Days)*86400*1000
	}

	prev := int64(1<<62 - 1)
	for _, offset := range []time.Duration{0, time.Second, time.Minute, time.Hour, 26 * time.Hour, 71 * time.Hour} {
		cd, ok := cycle.Remaining(start.Add(offset))
		if !ok {
			t.Fatalf("cycle unexpectedly expired at offset %s", offset)
		}
		ms := totalMS(cd)
		if ms > prev {
			t.Fatalf("remaining grew from %d to %d at offset %s", prev, ms, offset)
		}
		prev = ms
	}
}

func TestCycleExpiredBoundary(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cycle := Cycle{Start: start, End: start.Add(30 * time.Second)}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before end", start.Add(29 * time.Second), false},
		{"exactly at end", start.Add(30 * time.Second), true},
		{"one second after", start.Add(31 * time.Second), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cycle.Expired(tc.now); got != tc.want {
				t.Fatalf("Expired(%s) = %v, want %v", tc.now, got, tc.want)
			}
			if _, running := cycle.Remaining(tc.now); running == tc.want {
				t.Fatalf("Remaining disagrees with Expired at %s", tc.now)
			}
		})
	}
}

func TestCycleRemainingNeverNegative(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cycle := Cycle{Start: start, End: start.Add(time.Minute)}

	cd, ok := cycle.Remaining(start.Add(time.Hour))
	if ok {
		t.Fatal("expected expired cycle")
	}
	if cd != (Countdown{}) {
		t.Fatalf("expired Remaining = %+v, want zero value", cd)
	}
}

func TestCountdownString(t *testing.T) {
	cases := []struct {
		cd   Countdown
		want string
	}{
		{Countdown{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}, "2d 03:04:05"},
		{Countdown{Hours: 22, Minutes: 30, Seconds: 1}, "22:30:01"},
		{Countdown{}, "00:00:00"},
	}
	for _, tc := range cases {
		if got := tc.cd.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestCycleDurationValidate(t *testing.T) {
	cases := []struct {
		name    string
		d       CycleDuration
		wantErr error
	}{
		{"all zero", CycleDuration{}, ErrZeroDuration},
		{"negative component", CycleDuration{Days: 1, Hours: -1}, ErrZeroDuration},
		{"seconds only", CycleDuration{Seconds: 30}, nil},
		{"full", CycleDuration{Days: 3, Hours: 12}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.d.Validate(); err != tc.wantErr {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCycleDurationSpan(t *testing.T) {
	d := CycleDuration{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}
	want := 26*time.Hour + 3*time.Minute + 4*time.Second
	if got := d.Span(); got != want {
		t.Fatalf("Span() = %s, want %s", got, want)
	}
}
