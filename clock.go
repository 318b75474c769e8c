package stockfolio

import "time"

// Clock is the time source used to stamp creation and mutation times.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always returns t. It is meant for tests and reproducible output.
func FixedClock(t time.Time) Clock { return ClockFunc(func() time.Time { return t }) }
