package clock

import "time"

// Clock supplies the current time to the scheduling engine. It is
// injected everywhere a date or timestamp decision is made so tests can
// pin time deterministically.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar day truncated to midnight UTC.
	Today() time.Time
}

// Real is the wall-clock implementation.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

func (Real) Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Fixed is a clock pinned to a single instant, intended for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

func (f Fixed) Today() time.Time {
	y, m, d := f.T.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
