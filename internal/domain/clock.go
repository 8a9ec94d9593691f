package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze the dataset
// "lastUpdated" stamp via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Today returns the current date in YYYY-MM-DD form.
func Today() string {
	return clock.Now().Format("2006-01-02")
}
