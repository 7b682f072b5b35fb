package clock

import "time"

// Clock abstracts time so schedule evaluation and session ticking stay
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
