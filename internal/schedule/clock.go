package schedule

import "time"

// Clock abstracts "now" so date-boundary rules can be tested with a fixed
// instant instead of the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
