package stockfolio

import "time"

// t0 is the time of the fixed clock used throughout the tests.
var t0 = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

// stepClock returns a clock advancing by one minute on each call, starting at t0.
func stepClock() Clock {
	now := t0.Add(-time.Minute)
	return ClockFunc(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
}

// H is a helper for tests to create a holding whose current price is price.
func H(symbol string, quantity int, price float64) Holding {
	return NewHolding(symbol, symbol+" Inc.", quantity, price)
}
